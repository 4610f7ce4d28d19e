package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.MessageService = (*MessageService)(nil)

// MessageService is a mock implementation of pagesmith.MessageService.
type MessageService struct {
	CreateMessageFn                func(ctx context.Context, msg *pagesmith.Message) error
	FindMessageByIDFn              func(ctx context.Context, id string) (*pagesmith.Message, error)
	FindMessagesFn                 func(ctx context.Context, filter pagesmith.MessageFilter) ([]*pagesmith.Message, error)
	DeleteMessagesByConversationFn func(ctx context.Context, conversationID string) error
}

func (s *MessageService) CreateMessage(ctx context.Context, msg *pagesmith.Message) error {
	return s.CreateMessageFn(ctx, msg)
}

func (s *MessageService) FindMessageByID(ctx context.Context, id string) (*pagesmith.Message, error) {
	return s.FindMessageByIDFn(ctx, id)
}

func (s *MessageService) FindMessages(ctx context.Context, filter pagesmith.MessageFilter) ([]*pagesmith.Message, error) {
	return s.FindMessagesFn(ctx, filter)
}

func (s *MessageService) DeleteMessagesByConversation(ctx context.Context, conversationID string) error {
	return s.DeleteMessagesByConversationFn(ctx, conversationID)
}
