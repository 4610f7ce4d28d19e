package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.Tunnel = (*ForwardTunnel)(nil)

// ForwardTunnel is a tunnel run outside pagesmith (ngrok, cloudflared, an
// SSH forward) that exposes the hosting server at a fixed public URL. Open
// only checks that the public URL answers the health endpoint.
type ForwardTunnel struct {
	PublicURL string
	client    *http.Client
}

// NewForwardTunnel creates a ForwardTunnel for publicURL.
func NewForwardTunnel(publicURL string) *ForwardTunnel {
	return &ForwardTunnel{
		PublicURL: strings.TrimRight(publicURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Open returns the public URL once it reaches the hosting server.
func (t *ForwardTunnel) Open(ctx context.Context, localURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.PublicURL+"/health", nil)
	if err != nil {
		return "", pagesmith.Errorf(pagesmith.EINVALID, "invalid tunnel URL: %v", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", pagesmith.Errorf(pagesmith.EUNAVAILABLE, "tunnel %s unreachable: %v", t.PublicURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", pagesmith.Errorf(pagesmith.EUPSTREAM, "tunnel %s health check for %s: HTTP %d", t.PublicURL, localURL, resp.StatusCode)
	}
	return t.PublicURL, nil
}

// Close is a no-op; the tunnel process is not owned by pagesmith.
func (t *ForwardTunnel) Close() error {
	return nil
}
