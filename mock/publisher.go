package mock

import (
	"context"

	"github.com/fwojciec/pagesmith"
)

var _ pagesmith.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of pagesmith.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, req pagesmith.PublishRequest) (string, error)
}

func (p *Publisher) Publish(ctx context.Context, req pagesmith.PublishRequest) (string, error) {
	return p.PublishFn(ctx, req)
}
