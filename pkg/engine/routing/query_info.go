package routing

import (
	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
)

// ShortestPathTree holds single-source distances and the edge each vertex was reached through.
type ShortestPathTree struct {
	source     da.Index
	dist       []float64
	parentEdge []da.Index
}

func newShortestPathTree(source da.Index, n int) *ShortestPathTree {
	spt := &ShortestPathTree{
		source:     source,
		dist:       make([]float64, n),
		parentEdge: make([]da.Index, n),
	}
	for i := 0; i < n; i++ {
		spt.dist[i] = pkg.INF_WEIGHT
		spt.parentEdge[i] = da.INVALID_VERTEX_ID
	}
	spt.dist[source] = 0
	return spt
}

func (spt *ShortestPathTree) GetSource() da.Index {
	return spt.source
}

// GetDistance returns pkg.INF_WEIGHT for unreachable targets.
func (spt *ShortestPathTree) GetDistance(t da.Index) float64 {
	return spt.dist[t]
}

func (spt *ShortestPathTree) IsReachable(t da.Index) bool {
	return spt.dist[t] < pkg.INF_WEIGHT
}

// Path is a walk from source to target. Vertices has one more entry than Edges.
type Path struct {
	Vertices []da.Index
	Edges    []da.Index
	Distance float64
}

// PathTo rebuilds the path source -> t by walking parent edges back from t.
func (spt *ShortestPathTree) PathTo(g *da.Graph, t da.Index) (Path, bool) {
	if !spt.IsReachable(t) {
		return Path{}, false
	}

	vertices := []da.Index{t}
	edges := make([]da.Index, 0)
	for cur := t; cur != spt.source; {
		eId := spt.parentEdge[cur]
		edges = append(edges, eId)
		cur = g.GetEdge(eId).Head(cur)
		vertices = append(vertices, cur)
	}

	reverse(vertices)
	reverse(edges)
	return Path{Vertices: vertices, Edges: edges, Distance: spt.dist[t]}, true
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
