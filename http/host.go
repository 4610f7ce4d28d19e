package http

import (
	"context"
	"strings"

	"github.com/fwojciec/pagesmith"
)

// Ensure HostClient implements pagesmith.Hoster at compile time.
var _ pagesmith.Hoster = (*HostClient)(nil)

// hostRequest is the body of POST /host-html.
type hostRequest struct {
	HTMLContent string `json:"htmlContent"`
}

// hostResponse is the reply of POST /host-html.
type hostResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HostClient hands documents to a hosting server.
type HostClient struct {
	client *Client
}

// NewHostClient creates a HostClient for the hosting server at baseURL.
func NewHostClient(baseURL string, opts ...Option) *HostClient {
	return &HostClient{client: NewClient(baseURL, opts...)}
}

// Host uploads html and returns the URL it is served at.
func (h *HostClient) Host(ctx context.Context, html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagesmith.Errorf(pagesmith.EINVALID, "HTML content is required")
	}

	body, err := h.client.postJSON(ctx, "/host-html", hostRequest{HTMLContent: html})
	if err != nil {
		return "", err
	}

	var resp hostResponse
	if err := decodeJSON(body, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", pagesmith.Errorf(pagesmith.EUPSTREAM, "hosting server returned no URL")
	}
	return resp.URL, nil
}
