package pagesmith

import (
	"context"
	"time"
)

// Role identifies the author of a message.
type Role string

// Role constants for Message.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message represents one turn of a conversation. Assistant messages carry
// the recovered document, if any, in HTMLCode.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	HTMLCode       string    `json:"htmlCode,omitempty"`
	HTMLHash       string    `json:"htmlHash,omitempty"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"timestamp"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.ConversationID == "" {
		return Errorf(EINVALID, "message conversation ID required")
	}
	if !m.Role.Valid() {
		return Errorf(EINVALID, "message role must be %q or %q", RoleUser, RoleAssistant)
	}
	if m.Content == "" {
		return Errorf(EINVALID, "message content required")
	}
	if m.Role == RoleUser && m.HTMLCode != "" {
		return Errorf(EINVALID, "user messages cannot carry HTML")
	}
	return nil
}

// HasPreview reports whether the message carries a document to preview.
func (m *Message) HasPreview() bool {
	return m.HTMLCode != ""
}

// MessageService represents a service for managing messages.
type MessageService interface {
	// CreateMessage appends a message to its conversation. Position is
	// assigned by the service.
	// Returns ENOTFOUND if the conversation does not exist.
	CreateMessage(ctx context.Context, msg *Message) error

	// FindMessageByID retrieves a message by ID.
	// Returns ENOTFOUND if message does not exist.
	FindMessageByID(ctx context.Context, id string) (*Message, error)

	// FindMessages retrieves messages matching the filter in
	// conversation order.
	FindMessages(ctx context.Context, filter MessageFilter) ([]*Message, error)

	// DeleteMessagesByConversation removes all messages of a conversation.
	DeleteMessagesByConversation(ctx context.Context, conversationID string) error
}

// MessageFilter represents a filter for FindMessages.
type MessageFilter struct {
	ID             *string `json:"id"`
	ConversationID *string `json:"conversationId"`
	Role           *Role   `json:"role"`

	// WithPreview restricts results to messages carrying a document.
	WithPreview bool `json:"withPreview"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LatestPreview returns the most recent message carrying a document.
func LatestPreview(msgs []*Message) (*Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].HasPreview() {
			return msgs[i], true
		}
	}
	return nil, false
}
