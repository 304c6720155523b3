package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	helper "github.com/lintang-b-s/Postmanx/pkg/http/router/routerhelper"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type routeInspectionAPI struct {
	service  RouteInspectionService
	log      *zap.Logger
	validate *validator.Validate
	trans    ut.Translator
	timeout  time.Duration
}

func New(service RouteInspectionService, log *zap.Logger, timeout time.Duration) *routeInspectionAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &routeInspectionAPI{
		service:  service,
		log:      log,
		validate: validate,
		trans:    trans,
		timeout:  timeout,
	}
}

func (api *routeInspectionAPI) Routes(group *helper.RouteGroup) {
	group.POST("/routeInspection", api.routeInspection)
}

// routeInspection takes a GeoJSON FeatureCollection of roads and answers with a closed route covering every road.
// query: mode (base | greedy-hopcount | greedy-weighted), unit (miles | kilometers | meters), strict,
// start_lat and start_lon.
func (api *routeInspectionAPI) routeInspection(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeInspectionRequest
		err     error
	)

	query := r.URL.Query()
	request.Mode = query.Get("mode")
	request.Unit = query.Get("unit")
	if s := query.Get("strict"); s != "" {
		request.Strict, err = strconv.ParseBool(s)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("strict must be a boolean"))
			return
		}
	}
	if request.StartLat, err = optionalFloat(query.Get("start_lat")); err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lat must be a valid float"))
		return
	}
	if request.StartLon, err = optionalFloat(query.Get("start_lon")); err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lon must be a valid float"))
		return
	}

	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			api.errorResponse(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body must not be larger than %d bytes", maxBytesErr.Limit))
			return
		}
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("body must be a geojson FeatureCollection: %w", err))
		return
	}

	mode, _ := pkg.ParseMatchingMode(request.Mode)
	unit, _ := geo.ParseUnit(request.Unit)
	var start *da.VertexKey
	if request.StartLat != nil && request.StartLon != nil {
		k := da.NewVertexKey(*request.StartLon, *request.StartLat)
		start = &k
	}

	ctx := r.Context()
	if api.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.timeout)
		defer cancel()
	}

	rep, polyline, err := api.service.RouteInspection(ctx, fc, mode, unit, request.Strict, start)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteInspectionResponse(rep, polyline)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
