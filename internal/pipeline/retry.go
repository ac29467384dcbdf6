package pipeline

import (
	"context"
	"time"
)

const retryBackoffCap = 30 * time.Second

// withRetry runs fn until it succeeds or the attempt budget is spent.
// The wait between tries doubles each time, capped at retryBackoffCap.
func withRetry(ctx context.Context, attempts int, wait time.Duration, fn func(context.Context) error) error {
	if attempts < 0 {
		attempts = 0
	}
	if wait <= 0 {
		wait = 100 * time.Millisecond
	}

	for try := 0; ; try++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if try >= attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		wait *= 2
		if wait > retryBackoffCap {
			wait = retryBackoffCap
		}
	}
}
