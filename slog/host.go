package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesmith"
)

var (
	_ pagesmith.Hoster    = (*LoggingHoster)(nil)
	_ pagesmith.Publisher = (*LoggingPublisher)(nil)
)

// LoggingHoster wraps a Hoster with logging.
type LoggingHoster struct {
	next   pagesmith.Hoster
	logger *slog.Logger
}

// NewLoggingHoster creates a new LoggingHoster.
func NewLoggingHoster(next pagesmith.Hoster, logger *slog.Logger) *LoggingHoster {
	return &LoggingHoster{next: next, logger: logger}
}

// Host delegates to the wrapped hoster and logs the resulting URL.
func (h *LoggingHoster) Host(ctx context.Context, html string) (url string, err error) {
	defer func(begin time.Time) {
		h.logger.Info("host",
			"bytes", len(html),
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Host(ctx, html)
}

// LoggingPublisher wraps a Publisher with logging.
type LoggingPublisher struct {
	next   pagesmith.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next pagesmith.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// Publish delegates to the wrapped publisher and logs the resulting URL.
func (p *LoggingPublisher) Publish(ctx context.Context, req pagesmith.PublishRequest) (url string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("publish",
			"repo", req.RepoName,
			"bytes", len(req.HTML),
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Publish(ctx, req)
}
