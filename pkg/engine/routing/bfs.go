package routing

import (
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
)

// BFS computes hop-count shortest paths, every edge costs 1 regardless of its length.
type BFS struct {
	graph *da.Graph
}

func NewBFS(graph *da.Graph) *BFS {
	return &BFS{graph: graph}
}

// ShortestPath explores from s in incidence order, so the parent of each vertex is the first edge that reached it.
func (b *BFS) ShortestPath(s da.Index) *ShortestPathTree {
	n := b.graph.NumberOfVertices()
	spt := newShortestPathTree(s, n)

	queue := make([]da.Index, 0, n)
	queue = append(queue, s)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		b.graph.ForIncidentEdgesOf(u, func(e *da.Edge, v da.Index) {
			if spt.IsReachable(v) {
				return
			}
			spt.dist[v] = spt.dist[u] + 1
			spt.parentEdge[v] = e.GetID()
			queue = append(queue, v)
		})
	}
	return spt
}

// ShortestPathSearcher is implemented by Dijkstra and BFS.
type ShortestPathSearcher interface {
	ShortestPath(s da.Index) *ShortestPathTree
}
