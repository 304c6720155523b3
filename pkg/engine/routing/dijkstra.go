package routing

import (
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
)

// Dijkstra computes length-weighted single-source shortest paths over an undirected multigraph.
// edge lengths are non-negative (checked by Graph.Validate before any search runs).
type Dijkstra struct {
	graph *da.Graph

	pq        *da.MinHeap[da.Index]
	heapNodes []*da.PriorityQueueNode[da.Index]
	settled   []bool
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		pq:    da.NewFourAryHeap[da.Index]().WithTieBreak(func(a, b da.Index) bool { return a < b }),
	}
}

// ShortestPath runs from s until every reachable vertex is settled.
func (us *Dijkstra) ShortestPath(s da.Index) *ShortestPathTree {
	n := us.graph.NumberOfVertices()
	us.preallocate(n)

	spt := newShortestPathTree(s, n)

	sNode := da.NewPriorityQueueNode(0, s)
	us.heapNodes[s] = sNode
	us.pq.Insert(sNode)

	for !us.pq.IsEmpty() {
		us.graphSearchUni(spt)
	}

	return spt
}

func (us *Dijkstra) graphSearchUni(spt *ShortestPathTree) {
	node, _ := us.pq.ExtractMin()
	uId := node.GetItem()
	us.settled[uId] = true

	us.graph.ForIncidentEdgesOf(uId, func(e *da.Edge, vId da.Index) {
		if us.settled[vId] {
			return
		}

		newDist := spt.dist[uId] + e.GetLength()

		vAlreadyLabelled := us.heapNodes[vId] != nil
		if vAlreadyLabelled && newDist >= spt.dist[vId] {
			return
		}

		spt.dist[vId] = newDist
		spt.parentEdge[vId] = e.GetID()

		if vAlreadyLabelled {
			// still in the queue since it is not settled
			if err := us.pq.DecreaseKey(us.heapNodes[vId], newDist); err != nil {
				panic(err)
			}
		} else {
			vNode := da.NewPriorityQueueNode(newDist, vId)
			us.heapNodes[vId] = vNode
			us.pq.Insert(vNode)
		}
	})
}

func (us *Dijkstra) preallocate(n int) {
	us.heapNodes = make([]*da.PriorityQueueNode[da.Index], n)
	us.settled = make([]bool, n)
	us.pq.Preallocate(n)
}
