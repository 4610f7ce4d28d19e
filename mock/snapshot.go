package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.Snapshotter = (*Snapshotter)(nil)

// Snapshotter is a mock implementation of pagesmith.Snapshotter.
type Snapshotter struct {
	SnapshotFn func(ctx context.Context, html string, devices []pagesmith.Device) ([]*pagesmith.Snapshot, error)
	CloseFn    func() error
}

func (s *Snapshotter) Snapshot(ctx context.Context, html string, devices []pagesmith.Device) ([]*pagesmith.Snapshot, error) {
	return s.SnapshotFn(ctx, html, devices)
}

func (s *Snapshotter) Close() error {
	return s.CloseFn()
}
