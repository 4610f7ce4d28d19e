package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesmith"
)

// Ensure LoggingSnapshotter implements pagesmith.Snapshotter.
var _ pagesmith.Snapshotter = (*LoggingSnapshotter)(nil)

// LoggingSnapshotter wraps a Snapshotter with logging.
type LoggingSnapshotter struct {
	next   pagesmith.Snapshotter
	logger *slog.Logger
}

// NewLoggingSnapshotter creates a new LoggingSnapshotter.
func NewLoggingSnapshotter(next pagesmith.Snapshotter, logger *slog.Logger) *LoggingSnapshotter {
	return &LoggingSnapshotter{next: next, logger: logger}
}

// Snapshot logs the devices rendered and delegates to the wrapped snapshotter.
func (s *LoggingSnapshotter) Snapshot(ctx context.Context, html string, devices []pagesmith.Device) (snaps []*pagesmith.Snapshot, err error) {
	defer func(begin time.Time) {
		var bytes int
		for _, snap := range snaps {
			bytes += len(snap.PNG)
		}
		s.logger.Info("snapshot",
			"devices", len(devices),
			"snapshots", len(snaps),
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Snapshot(ctx, html, devices)
}

// Close delegates to the wrapped snapshotter.
func (s *LoggingSnapshotter) Close() error {
	return s.next.Close()
}
