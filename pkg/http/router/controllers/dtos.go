package controllers

import (
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/lintang-b-s/Postmanx/pkg/guidance"
)

type routeInspectionRequest struct {
	Mode     string   `json:"mode" validate:"omitempty,oneof=base greedy-hopcount hopcount greedy-weighted weighted"`
	Unit     string   `json:"unit" validate:"omitempty,oneof=miles mile mi kilometers kilometer km meters meter m"`
	Strict   bool     `json:"strict"`
	StartLat *float64 `json:"start_lat" validate:"required_with=StartLon,omitempty,min=-90,max=90"`
	StartLon *float64 `json:"start_lon" validate:"required_with=StartLat,omitempty,min=-180,max=180"`
}

type routeInspectionResponse struct {
	Report     *report.Report         `json:"report"`
	Polyline   string                 `json:"polyline"`
	Steps      []report.RouteStep     `json:"steps"`
	Directions []guidance.Instruction `json:"directions"`
}

func NewRouteInspectionResponse(rep *report.Report, polyline string) routeInspectionResponse {
	return routeInspectionResponse{
		Report:     rep,
		Polyline:   polyline,
		Steps:      rep.Steps,
		Directions: guidance.BuildDirections(rep),
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
