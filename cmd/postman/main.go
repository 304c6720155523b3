package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine"
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/geojsonio"
	"github.com/lintang-b-s/Postmanx/pkg/guidance"
	"github.com/lintang-b-s/Postmanx/pkg/logger"
	"github.com/lintang-b-s/Postmanx/pkg/osmparser"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "", "path to the config file (default ./data/config.yaml)")
	input      = flag.String("input", "", "road network: .geojson, .json, .osm.pbf, .pbf or .graph")
	mode       = flag.String("mode", "", "matching mode: base, greedy-hopcount or greedy-weighted")
	unit       = flag.String("unit", "", "distance unit: miles, kilometers or meters")
	outDir     = flag.String("out", "", "write route.geojson, eulerized.graph and report.json into this directory")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(*configPath); err != nil {
		panic(err)
	}
	cfg := util.LoadConfig()
	applyFlags(&cfg)

	if err := run(context.Background(), logger, cfg); err != nil {
		logger.Fatal("route inspection failed", zap.Error(err))
	}
}

func applyFlags(cfg *util.Config) {
	if *input != "" {
		cfg.Input = *input
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *unit != "" {
		cfg.Unit = *unit
	}
	if *outDir != "" {
		cfg.OutputGeoJSON = filepath.Join(*outDir, "route.geojson")
		cfg.OutputGraph = filepath.Join(*outDir, "eulerized.graph")
		cfg.OutputReport = filepath.Join(*outDir, "report.json")
	}
}

func run(ctx context.Context, logger *zap.Logger, cfg util.Config) error {
	matchingMode, ok := pkg.ParseMatchingMode(cfg.Mode)
	if !ok {
		return util.WrapErrorf(util.ErrUnknownMode, util.ErrBadParamInput, "unknown matching mode %q", cfg.Mode)
	}
	distUnit, err := geo.ParseUnit(cfg.Unit)
	if err != nil {
		return err
	}

	g, err := loadGraph(ctx, logger, cfg, distUnit)
	if err != nil {
		return err
	}
	if cfg.LargestComponentOnly {
		before := g.NumberOfEdges()
		g = g.LargestComponent()
		logger.Info("kept the largest connected component",
			zap.Int("edges", g.NumberOfEdges()), zap.Int("dropped", before-g.NumberOfEdges()))
	}

	opts := engine.Options{
		Mode:         matchingMode,
		Unit:         distUnit,
		Strict:       cfg.Strict,
		BaseFallback: cfg.BaseFallback,
		Workers:      cfg.Workers,
	}
	if cfg.HasStart {
		start := da.NewVertexKey(cfg.StartLon, cfg.StartLat)
		opts.Start = &start
	}

	res, err := engine.NewEngine(logger, opts).Run(ctx, g)
	if err != nil {
		return err
	}

	if err := writeOutputs(ctx, cfg, res); err != nil {
		return err
	}

	rep := res.Report
	logger.Info("route inspection done",
		zap.String("mode", matchingMode.String()),
		zap.String("total_distance", fmt.Sprintf("%.3f %s", rep.TotalDistance, rep.Unit)),
		zap.String("old_total_distance", fmt.Sprintf("%.3f %s", rep.OldTotalDistance, rep.Unit)),
		zap.Float64("distance_multiplier", rep.DistanceMultiplier),
		zap.Int("artificial_edges", rep.ArtificialEdgeCount),
		zap.Int("duplicated_edges", rep.DuplicatedEdgeCount))
	return nil
}

// loadGraph picks the reader from the input file extension.
func loadGraph(ctx context.Context, logger *zap.Logger, cfg util.Config, distUnit geo.Unit) (*da.Graph, error) {
	path := strings.ToLower(cfg.Input)
	switch {
	case strings.HasSuffix(path, ".geojson"), strings.HasSuffix(path, ".json"):
		return geojsonio.ReadGraphFile(cfg.Input, geojsonio.ReaderOptions{
			NameProperty: cfg.NameProperty,
			TypeProperty: cfg.TypeProperty,
			Unit:         distUnit,
		})
	case strings.HasSuffix(path, ".pbf"):
		return osmparser.NewOSMParser(logger, distUnit).Parse(ctx, cfg.Input)
	case strings.HasSuffix(path, ".graph"):
		return da.ReadGraphFile(cfg.Input)
	default:
		return nil, util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput,
			"unsupported input %q, expected .geojson, .json, .osm.pbf or .graph", cfg.Input)
	}
}

type reportFile struct {
	Report     *report.Report         `json:"report"`
	Steps      []report.RouteStep     `json:"steps"`
	Directions []guidance.Instruction `json:"directions"`
}

// writeOutputs writes every configured output concurrently. an empty path skips that output.
func writeOutputs(ctx context.Context, cfg util.Config, res *engine.Result) error {
	g, _ := errgroup.WithContext(ctx)
	if cfg.OutputGeoJSON != "" {
		g.Go(func() error {
			return geojsonio.WriteRouteFile(cfg.OutputGeoJSON, res.Report)
		})
	}
	if cfg.OutputGraph != "" {
		g.Go(func() error {
			return res.Graph.WriteGraphFile(cfg.OutputGraph)
		})
	}
	if cfg.OutputReport != "" {
		g.Go(func() error {
			js, err := json.MarshalIndent(reportFile{
				Report:     res.Report,
				Steps:      res.Report.Steps,
				Directions: guidance.BuildDirections(res.Report),
			}, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(cfg.OutputReport, append(js, '\n'), 0o644)
		})
	}
	return g.Wait()
}
