package http

import (
	"context"
	"net/url"

	"github.com/fwojciec/pagesmith"
)

// Ensure HistoryClient implements pagesmith.HistoryService at compile time.
var _ pagesmith.HistoryService = (*HistoryClient)(nil)

type historyResponse struct {
	Messages []*pagesmith.Message `json:"messages"`
}

// HistoryClient restores messages from a user service. Posting to
// /create-user/{id} registers unknown users and returns the history of
// known ones.
type HistoryClient struct {
	client *Client
}

// NewHistoryClient creates a HistoryClient for the service at baseURL.
func NewHistoryClient(baseURL string, opts ...Option) *HistoryClient {
	return &HistoryClient{client: NewClient(baseURL, opts...)}
}

// Restore returns the user's previous messages. Entries with an unknown
// role or no content are dropped.
func (h *HistoryClient) Restore(ctx context.Context, userID string) ([]*pagesmith.Message, error) {
	if userID == "" {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "user ID required")
	}

	body, err := h.client.postJSON(ctx, "/create-user/"+url.PathEscape(userID), struct{}{})
	if err != nil {
		return nil, err
	}

	var resp historyResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}

	msgs := make([]*pagesmith.Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		if m == nil || !m.Role.Valid() || m.Content == "" {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
