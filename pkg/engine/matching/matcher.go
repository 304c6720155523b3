package matching

import (
	"context"
	"time"

	"github.com/lintang-b-s/Postmanx/pkg"
	"github.com/lintang-b-s/Postmanx/pkg/concurrent"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/routing"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"go.uber.org/zap"
)

// MatchedPair is one committed pair of odd-degree vertices and the path that will be doubled to join them.
// A is always the smaller key by VertexKey.Less and Path runs from A to B.
type MatchedPair struct {
	Distance float64
	A, B     da.Index
	Path     routing.Path
}

type MatchResult struct {
	Mode  pkg.MatchingMode
	Pairs []MatchedPair
	// Unmatched is only ever non-empty in base mode, where a pair needs an existing edge between them.
	Unmatched []da.Index
}

// Matcher pairs up the odd-degree vertices of a graph.
//
// The pairing is greedy: candidate pairs are committed in ascending shortest-path distance and a vertex,
// once matched, is never reconsidered. This is an approximation of a minimum-weight perfect matching and can
// be strictly worse than the optimum, e.g. on a line a-b=c-d where b=c is the cheapest pair, greedy commits
// b-c and is then forced into a-d. An exact blossom matching is out of scope.
type Matcher struct {
	logger  *zap.Logger
	mode    pkg.MatchingMode
	workers int
}

func NewMatcher(logger *zap.Logger, mode pkg.MatchingMode, workers int) *Matcher {
	if workers < 1 {
		workers = 1
	}
	return &Matcher{logger: logger, mode: mode, workers: workers}
}

type candidate struct {
	a, b da.Index
}

// Match pairs the odd-degree vertices of g. g is only read.
func (m *Matcher) Match(ctx context.Context, g *da.Graph) (*MatchResult, error) {
	start := time.Now()

	odd := g.OddDegreeVertices()
	if len(odd)%2 != 0 {
		return nil, util.WrapErrorf(util.ErrInternalServerError, util.ErrInternalServerError,
			"graph has an odd number (%d) of odd-degree vertices", len(odd))
	}

	res := &MatchResult{Mode: m.mode, Pairs: make([]MatchedPair, 0, len(odd)/2)}
	if len(odd) == 0 {
		return res, nil
	}

	var (
		err   error
		pairs []MatchedPair
	)
	switch m.mode {
	case pkg.BASE:
		pairs, res.Unmatched, err = m.matchAdjacent(ctx, g, odd)
	case pkg.GREEDY_HOPCOUNT, pkg.GREEDY_WEIGHTED:
		pairs, err = m.matchShortestPaths(ctx, g, odd)
	default:
		return nil, util.WrapErrorf(util.ErrUnknownMode, util.ErrBadParamInput, "unknown matching mode %v", m.mode)
	}
	if err != nil {
		return nil, err
	}
	res.Pairs = pairs

	m.logger.Info("matched odd-degree vertices",
		zap.String("mode", m.mode.String()),
		zap.Int("odd", len(odd)),
		zap.Int("pairs", len(res.Pairs)),
		zap.Int("unmatched", len(res.Unmatched)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (m *Matcher) newSearcher(g *da.Graph) routing.ShortestPathSearcher {
	if m.mode == pkg.GREEDY_HOPCOUNT {
		return routing.NewBFS(g)
	}
	return routing.NewDijkstra(g)
}

// matchShortestPaths runs one single-source search per odd vertex, then greedily commits the closest pairs.
func (m *Matcher) matchShortestPaths(ctx context.Context, g *da.Graph, odd []da.Index) ([]MatchedPair, error) {
	// rows[i][j-i-1] is the distance from odd[i] to odd[j] for j > i.
	rows, err := concurrent.Map(ctx, m.workers, odd, func(s da.Index) []float64 {
		spt := m.newSearcher(g).ShortestPath(s)
		pos := indexOf(odd, s)
		row := make([]float64, 0, len(odd)-pos-1)
		for _, t := range odd[pos+1:] {
			row = append(row, spt.GetDistance(t))
		}
		return row
	})
	if err != nil {
		return nil, err
	}

	pq := newCandidateQueue(g, len(odd)*(len(odd)-1)/2)
	for i, row := range rows {
		for k, dist := range row {
			j := i + 1 + k
			if dist >= pkg.INF_WEIGHT {
				return nil, util.WrapErrorf(util.ErrDisconnectedGraph, util.ErrBadParamInput,
					"odd-degree vertex %s has no path to odd-degree vertex %s",
					g.GetVertexKey(odd[i]), g.GetVertexKey(odd[j]))
			}
			pq.Insert(da.NewPriorityQueueNode(dist, orderedCandidate(g, odd[i], odd[j])))
		}
	}

	committed, err := greedyCommit(ctx, pq, len(odd))
	if err != nil {
		return nil, err
	}
	if leftover := unmatched(odd, committed); len(leftover) > 0 {
		return nil, util.WrapErrorf(util.ErrDisconnectedGraph, util.ErrBadParamInput,
			"odd-degree vertex %s could not be matched, %d vertices left over",
			g.GetVertexKey(leftover[0]), len(leftover))
	}

	// only committed pairs need their path, rebuild them instead of holding every shortest path tree.
	return concurrent.Map(ctx, m.workers, committed, func(p MatchedPair) MatchedPair {
		path, _ := m.newSearcher(g).ShortestPath(p.A).PathTo(g, p.B)
		p.Path = path
		return p
	})
}

// matchAdjacent is the base heuristic: only odd vertices already joined by an edge can be paired, at the length
// of their shortest parallel edge. vertices left without an adjacent odd partner are returned as unmatched.
func (m *Matcher) matchAdjacent(ctx context.Context, g *da.Graph, odd []da.Index) ([]MatchedPair, []da.Index, error) {
	isOdd := make(map[da.Index]int, len(odd))
	for i, v := range odd {
		isOdd[v] = i
	}

	pq := newCandidateQueue(g, len(odd))
	for i, u := range odd {
		for _, eId := range g.IncidentEdges(u) {
			v := g.GetEdge(eId).Head(u)
			j, ok := isOdd[v]
			if !ok || j <= i {
				continue
			}
			best, _ := g.ShortestEdgeBetween(u, v)
			if best != eId {
				// parallel edges yield one candidate, at the shortest one
				continue
			}
			pq.Insert(da.NewPriorityQueueNode(g.GetEdge(best).GetLength(), orderedCandidate(g, u, v)))
		}
	}

	committed, err := greedyCommit(ctx, pq, len(odd))
	if err != nil {
		return nil, nil, err
	}
	for i := range committed {
		p := &committed[i]
		eId, _ := g.ShortestEdgeBetween(p.A, p.B)
		p.Path = routing.Path{
			Vertices: []da.Index{p.A, p.B},
			Edges:    []da.Index{eId},
			Distance: p.Distance,
		}
	}

	leftover := unmatched(odd, committed)
	if len(leftover) > 0 {
		m.logger.Warn("base matching left odd-degree vertices without an adjacent odd partner",
			zap.Int("unmatched", len(leftover)))
	}
	return committed, leftover, nil
}

func newCandidateQueue(g *da.Graph, size int) *da.MinHeap[candidate] {
	pq := da.NewFourAryHeap[candidate]().WithTieBreak(func(x, y candidate) bool {
		xa, ya := g.GetVertexKey(x.a), g.GetVertexKey(y.a)
		if xa != ya {
			return xa.Less(ya)
		}
		return g.GetVertexKey(x.b).Less(g.GetVertexKey(y.b))
	})
	pq.Preallocate(size)
	return pq
}

func orderedCandidate(g *da.Graph, u, v da.Index) candidate {
	if g.GetVertexKey(v).Less(g.GetVertexKey(u)) {
		u, v = v, u
	}
	return candidate{a: u, b: v}
}

// greedyCommit pops candidates in (distance, a, b) order and commits those whose endpoints are both still free.
func greedyCommit(ctx context.Context, pq *da.MinHeap[candidate], numOdd int) ([]MatchedPair, error) {
	matched := make(map[da.Index]struct{}, numOdd)
	pairs := make([]MatchedPair, 0, numOdd/2)

	for !pq.IsEmpty() && len(matched) < numOdd {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node, _ := pq.ExtractMin()
		c := node.GetItem()
		if _, ok := matched[c.a]; ok {
			continue
		}
		if _, ok := matched[c.b]; ok {
			continue
		}
		matched[c.a] = struct{}{}
		matched[c.b] = struct{}{}
		pairs = append(pairs, MatchedPair{Distance: node.GetRank(), A: c.a, B: c.b})
	}
	return pairs, nil
}

func unmatched(odd []da.Index, pairs []MatchedPair) []da.Index {
	matched := make(map[da.Index]struct{}, 2*len(pairs))
	for _, p := range pairs {
		matched[p.A] = struct{}{}
		matched[p.B] = struct{}{}
	}
	left := make([]da.Index, 0)
	for _, v := range odd {
		if _, ok := matched[v]; !ok {
			left = append(left, v)
		}
	}
	return left
}

// indexOf on a sorted slice of vertex ids.
func indexOf(odd []da.Index, v da.Index) int {
	lo, hi := 0, len(odd)
	for lo < hi {
		mid := (lo + hi) / 2
		if odd[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
