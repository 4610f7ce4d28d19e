// Package slog provides log/slog decorators for pagesmith services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesmith"
)

// Ensure LoggingGenerator implements pagesmith.Generator.
var _ pagesmith.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   pagesmith.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next pagesmith.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the request.
func (g *LoggingGenerator) Generate(ctx context.Context, req pagesmith.GenerateRequest) (resp string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"requirements", len(req.Requirements),
			"max_iterations", req.MaxIterations,
			"bytes", len(resp),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}
