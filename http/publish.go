package http

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

// Ensure PublishClient implements pagesmith.Publisher at compile time.
var _ pagesmith.Publisher = (*PublishClient)(nil)

type publishResponse struct {
	URL string `json:"url"`
}

// PublishClient publishes documents through a repository service.
type PublishClient struct {
	client *Client
}

// NewPublishClient creates a PublishClient for the service at baseURL.
func NewPublishClient(baseURL string, opts ...Option) *PublishClient {
	return &PublishClient{client: NewClient(baseURL, opts...)}
}

// Publish posts the request to /publish and returns the site URL.
func (p *PublishClient) Publish(ctx context.Context, req pagesmith.PublishRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	body, err := p.client.postJSON(ctx, "/publish", req)
	if err != nil {
		return "", err
	}

	var resp publishResponse
	if err := decodeJSON(body, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", pagesmith.Errorf(pagesmith.EUPSTREAM, "publish service returned no URL")
	}
	return resp.URL, nil
}
