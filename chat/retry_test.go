package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/chat"
	"github.com/fwojciec/pagesmith/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithRetry(t *testing.T) {
	t.Parallel()

	req := pagesmith.GenerateRequest{Requirements: "x"}

	t.Run("does not retry upstream failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		g := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				calls++
				return "", pagesmith.Errorf(pagesmith.EUPSTREAM, "HTTP 502")
			},
		}

		_, err := chat.GenerateWithRetry(context.Background(), g, req, []time.Duration{0, 0}, nil)

		assert.Equal(t, pagesmith.EUPSTREAM, pagesmith.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("logs each retry attempt", func(t *testing.T) {
		t.Parallel()

		var attempts []int
		g := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				return "", pagesmith.Errorf(pagesmith.EUNAVAILABLE, "down")
			},
		}

		_, err := chat.GenerateWithRetry(context.Background(), g, req, []time.Duration{0, 0}, func(attempt int, _ error) {
			attempts = append(attempts, attempt)
		})

		require.Error(t, err)
		assert.Equal(t, []int{2, 3}, attempts)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		g := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				cancel()
				return "", pagesmith.Errorf(pagesmith.EUNAVAILABLE, "down")
			},
		}

		_, err := chat.GenerateWithRetry(ctx, g, req, []time.Duration{time.Hour}, nil)

		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("default delays back off exponentially", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, chat.DefaultRetryDelays())
	})
}
