// Package http provides HTTP clients for the remote collaborators of
// pagesmith (generation, hosting, publishing, history) and the local
// hosting server.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagesmith"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for requests to helper services.
const DefaultTimeout = 30 * time.Second

// DefaultGenerateTimeout is the default timeout for generation requests,
// which run several model iterations server-side.
const DefaultGenerateTimeout = 5 * time.Minute

// maxErrorSnippet bounds how much of a failed response body ends up in an
// error message.
const maxErrorSnippet = 200

// maxResponseBody bounds how much of a response is read.
const maxResponseBody = 32 << 20

// Client is the shared transport of the helper-service clients.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit limits requests to rps per second with no bursting.
// Zero or negative rps disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON posts body as JSON to path and returns the response body.
// Transport failures are EUNAVAILABLE; non-2xx answers are EUPSTREAM.
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "invalid service URL %q", c.baseURL)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, pagesmith.Errorf(pagesmith.EUNAVAILABLE, "%s unreachable: %v", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, pagesmith.Errorf(pagesmith.EUNAVAILABLE, "failed to read response from %s: %v", c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pagesmith.Errorf(pagesmith.EUPSTREAM, "HTTP %d from %s: %s",
			resp.StatusCode, path, snippet(data))
	}

	return data, nil
}

// decodeJSON decodes a JSON response body, reporting malformed bodies as
// EUPSTREAM.
func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return pagesmith.Errorf(pagesmith.EUPSTREAM, "malformed response: %s", snippet(data))
	}
	return nil
}

func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
