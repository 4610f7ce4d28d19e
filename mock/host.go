package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var (
	_ pagesmith.Hoster = (*Hoster)(nil)
	_ pagesmith.Tunnel = (*Tunnel)(nil)
)

// Hoster is a mock implementation of pagesmith.Hoster.
type Hoster struct {
	HostFn func(ctx context.Context, html string) (string, error)
}

func (h *Hoster) Host(ctx context.Context, html string) (string, error) {
	return h.HostFn(ctx, html)
}

// Tunnel is a mock implementation of pagesmith.Tunnel.
type Tunnel struct {
	OpenFn  func(ctx context.Context, localURL string) (string, error)
	CloseFn func() error
}

func (t *Tunnel) Open(ctx context.Context, localURL string) (string, error) {
	return t.OpenFn(ctx, localURL)
}

func (t *Tunnel) Close() error {
	return t.CloseFn()
}
