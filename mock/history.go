package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of pagesmith.HistoryService.
type HistoryService struct {
	RestoreFn func(ctx context.Context, userID string) ([]*pagesmith.Message, error)
}

func (s *HistoryService) Restore(ctx context.Context, userID string) ([]*pagesmith.Message, error) {
	return s.RestoreFn(ctx, userID)
}
