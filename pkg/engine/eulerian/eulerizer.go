package eulerian

import (
	"context"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/matching"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"go.uber.org/zap"
)

type EulerizerOptions struct {
	Unit geo.Unit
	// BaseFallback lets base mode close its leftover odd vertices with weighted shortest paths
	// instead of failing.
	BaseFallback bool
	Workers      int
}

// Eulerizer adds edges to a graph until every vertex has even degree. it never removes an edge.
type Eulerizer struct {
	logger *zap.Logger
	opts   EulerizerOptions
}

func NewEulerizer(logger *zap.Logger, opts EulerizerOptions) *Eulerizer {
	return &Eulerizer{logger: logger, opts: opts}
}

// Eulerize applies a matching to a copy of g and returns the copy. g itself is left untouched.
//
// weighted and base pairs get every edge along their path doubled, carrying the same name, length and type.
// hop-count pairs get one synthetic edge straight between the endpoints, measured geodesically.
func (ez *Eulerizer) Eulerize(ctx context.Context, g *da.Graph, match *matching.MatchResult) (*da.Graph, error) {
	aug := g.Clone()

	added := 0
	for _, p := range match.Pairs {
		added += ez.augment(aug, match.Mode, p)
	}

	if len(match.Unmatched) > 0 {
		left := aug.OddDegreeVertices()
		if !ez.opts.BaseFallback {
			return nil, util.WrapErrorf(util.ErrNonEulerianAfterAugmentation, util.ErrBadParamInput,
				"%d odd-degree vertices remain after augmentation using %s mode - use %s mode instead",
				len(left), match.Mode, pkg.GREEDY_WEIGHTED)
		}

		ez.logger.Warn("base augmentation left odd-degree vertices, closing them with weighted shortest paths",
			zap.Int("odd", len(left)))
		closure, err := matching.NewMatcher(ez.logger, pkg.GREEDY_WEIGHTED, ez.opts.Workers).Match(ctx, aug)
		if err != nil {
			return nil, err
		}
		for _, p := range closure.Pairs {
			added += ez.augment(aug, closure.Mode, p)
		}
	}

	if odd := aug.OddDegreeVertices(); len(odd) > 0 {
		return nil, util.WrapErrorf(util.ErrNonEulerianAfterAugmentation, util.ErrInternalServerError,
			"%d odd-degree vertices remain after augmentation using %s mode, first is %s",
			len(odd), match.Mode, aug.GetVertexKey(odd[0]))
	}

	ez.logger.Info("eulerized graph",
		zap.String("mode", match.Mode.String()),
		zap.Int("pairs", len(match.Pairs)),
		zap.Int("added_edges", added),
		zap.Int("edges", aug.NumberOfEdges()))
	return aug, nil
}

func (ez *Eulerizer) augment(g *da.Graph, mode pkg.MatchingMode, p matching.MatchedPair) int {
	// an adjacent hopcount pair is closed by walking its road again.
	if mode == pkg.GREEDY_HOPCOUNT && len(p.Path.Edges) != 1 {
		a, b := g.GetVertexKey(p.A), g.GetVertexKey(p.B)
		g.AddSyntheticEdge(p.A, p.B, geo.Distance(a.Lon, a.Lat, b.Lon, b.Lat, ez.opts.Unit))
		return 1
	}
	for _, eId := range p.Path.Edges {
		g.AddDuplicateEdge(eId)
	}
	return len(p.Path.Edges)
}
