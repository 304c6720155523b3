package eulerian

import (
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/util"
)

// CircuitStep is one traversal of one edge, in walking direction.
type CircuitStep struct {
	From   da.VertexKey
	To     da.VertexKey
	EdgeID da.Index
}

// ExtractCircuit starts from the first vertex that has an edge.
func ExtractCircuit(g *da.Graph) ([]CircuitStep, error) {
	for v := range g.NumberOfVertices() {
		if g.Degree(da.Index(v)) > 0 {
			return ExtractCircuitFrom(g, da.Index(v))
		}
	}
	return []CircuitStep{}, nil
}

// ExtractCircuitFrom returns a closed walk from start that uses every edge of g exactly once (Hierholzer).
// at each vertex the next unused incident edge in insertion order is taken, so the same graph always gives
// the same circuit. g must be connected with every degree even.
func ExtractCircuitFrom(g *da.Graph, start da.Index) ([]CircuitStep, error) {
	if err := checkEulerian(g, start); err != nil {
		return nil, err
	}
	m := g.NumberOfEdges()
	if m == 0 {
		return []CircuitStep{}, nil
	}

	used := make([]bool, m)
	cursor := make([]int, g.NumberOfVertices())

	type frame struct {
		v    da.Index
		edge da.Index // edge taken to reach v
	}
	stack := make([]frame, 0, m+1)
	stack = append(stack, frame{v: start, edge: da.INVALID_VERTEX_ID})

	// steps come out in reverse walking order as vertices run out of unused edges
	steps := make([]CircuitStep, 0, m)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		incident := g.IncidentEdges(top.v)
		for cursor[top.v] < len(incident) && used[incident[cursor[top.v]]] {
			cursor[top.v]++
		}

		if cursor[top.v] < len(incident) {
			eId := incident[cursor[top.v]]
			cursor[top.v]++
			used[eId] = true
			stack = append(stack, frame{v: g.GetEdge(eId).Head(top.v), edge: eId})
			continue
		}

		stack = stack[:len(stack)-1]
		if top.edge != da.INVALID_VERTEX_ID {
			prev := stack[len(stack)-1]
			steps = append(steps, CircuitStep{
				From:   g.GetVertexKey(prev.v),
				To:     g.GetVertexKey(top.v),
				EdgeID: top.edge,
			})
		}
	}
	steps = util.ReverseG(steps)

	if err := verifyCircuit(steps, m); err != nil {
		return nil, err
	}
	return steps, nil
}

func checkEulerian(g *da.Graph, start da.Index) error {
	if int(start) >= g.NumberOfVertices() {
		if g.NumberOfEdges() == 0 {
			return nil
		}
		return util.WrapErrorf(util.ErrNotFound, util.ErrBadParamInput, "start vertex %d is not in the graph", start)
	}
	for v, k := range g.Vertices() {
		if d := g.Degree(v); d%2 != 0 {
			return util.WrapErrorf(util.ErrNotEulerian, util.ErrBadParamInput,
				"vertex %s has odd degree %d", k, d)
		}
	}
	if g.NumberOfEdges() == 0 {
		return nil
	}
	if g.Degree(start) == 0 {
		return util.WrapErrorf(util.ErrNotEulerian, util.ErrBadParamInput,
			"start vertex %s has no edges", g.GetVertexKey(start))
	}
	if components := g.ConnectedComponents(); len(components) > 1 {
		return util.WrapErrorf(util.ErrDisconnectedGraph, util.ErrBadParamInput,
			"edges are spread over %d components, %s cannot reach %s", len(components),
			g.GetVertexKey(components[0][0]), g.GetVertexKey(components[1][0]))
	}
	return nil
}

func verifyCircuit(steps []CircuitStep, numEdges int) error {
	if len(steps) != numEdges {
		return util.WrapErrorf(util.ErrNotEulerian, util.ErrInternalServerError,
			"circuit covers %d of %d edges", len(steps), numEdges)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i-1].To != steps[i].From {
			return util.WrapErrorf(util.ErrNotEulerian, util.ErrInternalServerError,
				"circuit breaks between step %d and %d", i-1, i)
		}
	}
	if steps[0].From != steps[len(steps)-1].To {
		return util.WrapErrorf(util.ErrNotEulerian, util.ErrInternalServerError, "circuit is not closed")
	}
	return nil
}
