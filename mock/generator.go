package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.Generator = (*Generator)(nil)

// Generator is a mock implementation of pagesmith.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req pagesmith.GenerateRequest) (string, error)
}

func (g *Generator) Generate(ctx context.Context, req pagesmith.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}
