package dex

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultRetryBackoff = 100 * time.Millisecond

// withRetry calls fn until it succeeds, maxRetries extra attempts are spent
// or ctx is done. The delay doubles after every failed attempt.
func withRetry(ctx context.Context, logger *zap.Logger, op string, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryBackoff
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}
		logger.Warn("rpc call failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
