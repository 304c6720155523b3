package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/Postmanx/pkg/http"
	"github.com/lintang-b-s/Postmanx/pkg/http/usecases"
	"github.com/lintang-b-s/Postmanx/pkg/logger"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"go.uber.org/zap"
)

var (
	configPath   = flag.String("config", "", "path to the config file (default ./data/config.yaml)")
	useRateLimit = flag.Bool("rate_limit", true, "limit requests per client ip")
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

	routeInspectionService := usecases.NewRouteInspectionService(logger, cfg.NameProperty, cfg.TypeProperty,
		cfg.Workers, cfg.BaseFallback, cfg.LargestComponentOnly)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api := http.NewServer(logger).Use(ctx, cfg, *useRateLimit, routeInspectionService)

	signal := http.GracefulShutdown()

	logger.Info("Postmanx Route Inspection Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
