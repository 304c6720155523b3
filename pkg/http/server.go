package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/Postmanx/pkg/http/router"
	"github.com/lintang-b-s/Postmanx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Postmanx/pkg/http/server"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the api in the background. Wait returns its error once ctx is cancelled or the listener fails.
func (s *Server) Use(
	ctx context.Context,
	cfg util.Config,

	useRateLimit bool,
	routeInspectionService controllers.RouteInspectionService,
) *Server {
	config := http_server.Config{
		Port:           cfg.APIPort,
		Timeout:        cfg.APITimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}

	server := http_router.NewAPI(s.Log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, config, useRateLimit, routeInspectionService)
	})
	s.g = g
	return s
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown blocks until SIGINT or SIGTERM arrives.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
