package pagesmith

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the number of runes a conversation title keeps.
const MaxTitleLength = 60

// DefaultTitle is used when a conversation starts without a usable prompt.
const DefaultTitle = "New conversation"

// Conversation represents one chat thread between a user and the
// generation service.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the conversation contains invalid fields.
func (c *Conversation) Validate() error {
	if c.UserID == "" {
		return Errorf(EINVALID, "conversation user ID required")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "conversation title required")
	}
	if utf8.RuneCountInString(c.Title) > MaxTitleLength {
		return Errorf(EINVALID, "conversation title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// TitleFromPrompt derives a conversation title from the first prompt:
// whitespace is collapsed and the result is cut to MaxTitleLength runes.
func TitleFromPrompt(prompt string) string {
	title := strings.Join(strings.Fields(prompt), " ")
	if title == "" {
		return DefaultTitle
	}
	if utf8.RuneCountInString(title) <= MaxTitleLength {
		return title
	}
	runes := []rune(title)
	return strings.TrimSpace(string(runes[:MaxTitleLength]))
}

// ConversationService represents a service for managing conversations.
type ConversationService interface {
	// CreateConversation creates a new conversation.
	CreateConversation(ctx context.Context, conv *Conversation) error

	// FindConversationByID retrieves a conversation by ID.
	// Returns ENOTFOUND if conversation does not exist.
	FindConversationByID(ctx context.Context, id string) (*Conversation, error)

	// FindConversations retrieves conversations matching the filter,
	// most recently updated first.
	FindConversations(ctx context.Context, filter ConversationFilter) ([]*Conversation, error)

	// UpdateConversation updates an existing conversation.
	// Returns ENOTFOUND if conversation does not exist.
	UpdateConversation(ctx context.Context, id string, upd ConversationUpdate) (*Conversation, error)

	// DeleteConversation permanently removes a conversation and its messages.
	// Returns ENOTFOUND if conversation does not exist.
	DeleteConversation(ctx context.Context, id string) error
}

// ConversationFilter represents a filter for FindConversations.
type ConversationFilter struct {
	ID     *string `json:"id"`
	UserID *string `json:"userId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ConversationUpdate represents fields that can be updated on a conversation.
// UpdatedAt is always bumped, so an empty update marks activity.
type ConversationUpdate struct {
	Title *string `json:"title"`
}
