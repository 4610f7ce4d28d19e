package chat

import (
	"context"
	"time"

	"github.com/fwojciec/pagesmith"
)

// DefaultRetryDelays returns the backoff delays for generation retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LogFunc is the signature for a retry logging function.
type LogFunc func(attempt int, err error)

// GenerateWithRetry calls g, retrying after each delay while the service is
// unreachable (EUNAVAILABLE). Other failures are returned immediately.
func GenerateWithRetry(ctx context.Context, g pagesmith.Generator, req pagesmith.GenerateRequest, delays []time.Duration, logf LogFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		reply, err := g.Generate(ctx, req)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if pagesmith.ErrorCode(err) != pagesmith.EUNAVAILABLE || attempt >= maxAttempts-1 {
			break
		}

		if logf != nil {
			logf(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
