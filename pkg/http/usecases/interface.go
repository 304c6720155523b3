package usecases

import (
	"context"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine"
)

type RouteInspectionEngine interface {
	Run(ctx context.Context, g *da.Graph) (*engine.Result, error)
}
