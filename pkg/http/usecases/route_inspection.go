package usecases

import (
	"context"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine"
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/geojsonio"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type RouteInspectionService struct {
	log                  *zap.Logger
	readerOpts           geojsonio.ReaderOptions
	workers              int
	baseFallback         bool
	largestComponentOnly bool
	newEngine            func(opts engine.Options) RouteInspectionEngine
}

func NewRouteInspectionService(log *zap.Logger, nameProperty, typeProperty string, workers int,
	baseFallback, largestComponentOnly bool) *RouteInspectionService {
	return &RouteInspectionService{
		log:                  log,
		readerOpts:           geojsonio.ReaderOptions{NameProperty: nameProperty, TypeProperty: typeProperty},
		workers:              workers,
		baseFallback:         baseFallback,
		largestComponentOnly: largestComponentOnly,
		newEngine: func(opts engine.Options) RouteInspectionEngine {
			return engine.NewEngine(log, opts)
		},
	}
}

// RouteInspection builds the street graph from fc, runs the pipeline and returns the report and the route
// as an encoded polyline.
func (rs *RouteInspectionService) RouteInspection(ctx context.Context, fc *geojson.FeatureCollection,
	mode pkg.MatchingMode, unit geo.Unit, strict bool, start *da.VertexKey) (*report.Report, string, error) {
	readerOpts := rs.readerOpts
	readerOpts.Unit = unit
	g, err := geojsonio.GraphFromFeatureCollection(fc, readerOpts)
	if err != nil {
		return nil, "", err
	}
	if g.NumberOfEdges() == 0 {
		return nil, "", util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput,
			"feature collection has no LineString or MultiLineString roads")
	}
	if rs.largestComponentOnly {
		g = g.LargestComponent()
	}

	res, err := rs.newEngine(engine.Options{
		Mode:         mode,
		Unit:         unit,
		Strict:       strict,
		BaseFallback: rs.baseFallback,
		Workers:      rs.workers,
		Start:        start,
	}).Run(ctx, g)
	if err != nil {
		return nil, "", err
	}

	return res.Report, geo.PolylineFromCoords(res.Report.Coordinates()), nil
}
