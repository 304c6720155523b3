package controllers

import (
	"context"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/paulmach/orb/geojson"
)

type RouteInspectionService interface {
	RouteInspection(ctx context.Context, fc *geojson.FeatureCollection, mode pkg.MatchingMode, unit geo.Unit,
		strict bool, start *da.VertexKey) (*report.Report, string, error)
}
