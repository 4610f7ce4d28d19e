package http

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

// Ensure Generator implements pagesmith.Generator at compile time.
var _ pagesmith.Generator = (*Generator)(nil)

// Generator calls a generation service's /generate endpoint. The reply
// body is returned verbatim, in whatever shape the service produced.
type Generator struct {
	client *Client
}

// NewGenerator creates a Generator for the service at baseURL. The timeout
// defaults to DefaultGenerateTimeout.
func NewGenerator(baseURL string, opts ...Option) *Generator {
	opts = append([]Option{WithTimeout(DefaultGenerateTimeout)}, opts...)
	return &Generator{client: NewClient(baseURL, opts...)}
}

// Generate posts the requirements and returns the raw reply.
func (g *Generator) Generate(ctx context.Context, req pagesmith.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	req = req.WithDefaults()

	body, err := g.client.postJSON(ctx, "/generate", req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
