package engine

import (
	"context"
	"time"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/eulerian"
	"github.com/lintang-b-s/Postmanx/pkg/engine/matching"
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/spatialindex"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"go.uber.org/zap"
)

type Options struct {
	Mode         pkg.MatchingMode
	Unit         geo.Unit
	Strict       bool
	BaseFallback bool
	Workers      int
	// Start is snapped to the closest vertex that has an edge. nil starts at the first such vertex.
	Start *da.VertexKey
}

func DefaultOptions() Options {
	return Options{
		Mode:         pkg.GREEDY_WEIGHTED,
		Unit:         geo.Miles,
		BaseFallback: true,
		Workers:      1,
	}
}

type Result struct {
	Graph   *da.Graph
	Matches *matching.MatchResult
	Circuit []eulerian.CircuitStep
	Report  *report.Report
}

// Engine runs the route inspection pipeline: validate, match, eulerize, extract the circuit, report.
// every stage hands an explicit value to the next one and the input graph is never modified.
type Engine struct {
	logger *zap.Logger
	opts   Options
}

func NewEngine(logger *zap.Logger, opts Options) *Engine {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Engine{logger: logger, opts: opts}
}

func (e *Engine) GetOptions() Options {
	return e.opts
}

func (e *Engine) Run(ctx context.Context, g *da.Graph) (*Result, error) {
	start := time.Now()
	e.logger.Info("Starting route inspection...",
		zap.String("mode", e.opts.Mode.String()),
		zap.String("unit", e.opts.Unit.String()),
		zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()))

	stage := time.Now()
	if err := g.Validate(e.opts.Strict); err != nil {
		return nil, stageError("validate", err)
	}
	oldTotal := g.TotalLength()
	e.logStage("validate", stage)

	stage = time.Now()
	match, err := matching.NewMatcher(e.logger, e.opts.Mode, e.opts.Workers).Match(ctx, g)
	if err != nil {
		return nil, stageError("match", err)
	}
	e.logStage("match", stage, zap.Int("pairs", len(match.Pairs)))

	stage = time.Now()
	ez := eulerian.NewEulerizer(e.logger, eulerian.EulerizerOptions{
		Unit:         e.opts.Unit,
		BaseFallback: e.opts.BaseFallback,
		Workers:      e.opts.Workers,
	})
	aug, err := ez.Eulerize(ctx, g, match)
	if err != nil {
		return nil, stageError("eulerize", err)
	}
	e.logStage("eulerize", stage, zap.Int("edges", aug.NumberOfEdges()))

	stage = time.Now()
	circuit, err := e.extract(aug)
	if err != nil {
		return nil, stageError("circuit", err)
	}
	e.logStage("circuit", stage, zap.Int("steps", len(circuit)))

	rep := report.Build(aug, circuit, oldTotal, e.opts.Unit)
	e.logger.Info("Route inspection done.",
		zap.Float64("total_distance", rep.TotalDistance),
		zap.Float64("old_total_distance", rep.OldTotalDistance),
		zap.Float64("distance_multiplier", rep.DistanceMultiplier),
		zap.Int("artificial_edges", rep.ArtificialEdgeCount),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{Graph: aug, Matches: match, Circuit: circuit, Report: rep}, nil
}

func (e *Engine) extract(aug *da.Graph) ([]eulerian.CircuitStep, error) {
	if e.opts.Start == nil {
		return eulerian.ExtractCircuit(aug)
	}

	rt := spatialindex.NewRtree()
	rt.Build(aug, e.logger)
	v, ok := rt.Nearest(e.opts.Start.Lat, e.opts.Start.Lon)
	if !ok {
		return eulerian.ExtractCircuit(aug)
	}
	e.logger.Info("snapped start coordinate",
		zap.String("requested", e.opts.Start.String()),
		zap.String("vertex", aug.GetVertexKey(v).String()))
	return eulerian.ExtractCircuitFrom(aug, v)
}

func (e *Engine) logStage(name string, since time.Time, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("stage", name), zap.Duration("elapsed", time.Since(since))}, fields...)
	e.logger.Info("stage done", fields...)
}

// stageError keeps the cause reachable through errors.Is and its category for the http layer.
func stageError(stage string, err error) error {
	return util.WrapErrorf(err, util.ErrorCode(err), "%s: %v", stage, err)
}
