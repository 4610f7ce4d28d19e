package pagesmith

import (
	"context"
	"io"
)

// URLType describes how a hosted document is reachable.
type URLType string

// URLType constants.
const (
	URLTypeTunnel URLType = "tunnel"
	URLTypeLocal  URLType = "local"
)

// Hoster makes a document reachable at a URL.
type Hoster interface {
	// Host replaces the currently hosted document and returns its URL.
	// Returns EINVALID for an empty document.
	Host(ctx context.Context, html string) (url string, err error)
}

// Tunnel exposes a local address publicly. Implementations wrap an
// external tunnelling tool; the hosting server opens it lazily and falls
// back to the local URL when it fails.
type Tunnel interface {
	io.Closer

	// Open starts the tunnel and returns its public URL.
	Open(ctx context.Context, localURL string) (publicURL string, err error)
}
