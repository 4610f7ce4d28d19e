package pagesmith

import "context"

// HistoryService restores a user's messages from a remote store.
type HistoryService interface {
	// Restore registers userID with the remote store if needed and returns
	// the user's previous messages, oldest first. A new user has none.
	Restore(ctx context.Context, userID string) ([]*Message, error)
}
