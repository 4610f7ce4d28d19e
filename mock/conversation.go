package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.ConversationService = (*ConversationService)(nil)

// ConversationService is a mock implementation of pagesmith.ConversationService.
type ConversationService struct {
	CreateConversationFn   func(ctx context.Context, conv *pagesmith.Conversation) error
	FindConversationByIDFn func(ctx context.Context, id string) (*pagesmith.Conversation, error)
	FindConversationsFn    func(ctx context.Context, filter pagesmith.ConversationFilter) ([]*pagesmith.Conversation, error)
	UpdateConversationFn   func(ctx context.Context, id string, upd pagesmith.ConversationUpdate) (*pagesmith.Conversation, error)
	DeleteConversationFn   func(ctx context.Context, id string) error
}

func (s *ConversationService) CreateConversation(ctx context.Context, conv *pagesmith.Conversation) error {
	return s.CreateConversationFn(ctx, conv)
}

func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*pagesmith.Conversation, error) {
	return s.FindConversationByIDFn(ctx, id)
}

func (s *ConversationService) FindConversations(ctx context.Context, filter pagesmith.ConversationFilter) ([]*pagesmith.Conversation, error) {
	return s.FindConversationsFn(ctx, filter)
}

func (s *ConversationService) UpdateConversation(ctx context.Context, id string, upd pagesmith.ConversationUpdate) (*pagesmith.Conversation, error) {
	return s.UpdateConversationFn(ctx, id, upd)
}

func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	return s.DeleteConversationFn(ctx, id)
}
