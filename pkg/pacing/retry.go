package pacing

import (
	"context"
	"errors"
	"time"

	"ordersync/pkg/logger"
	"ordersync/pkg/serrors"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Retrier retries calls that fail with serrors.ErrRateLimited using
// exponential backoff: Base, 2*Base, 4*Base and so on, for at most
// MaxAttempts calls in total. Every other error is returned unchanged on the
// first occurrence.
type Retrier struct {
	Base        time.Duration
	MaxAttempts int
	// OnRetry, when set, is invoked before each backoff sleep.
	OnRetry func(ctx context.Context, attempt int, err error)
}

// DefaultRetrier matches the fulfillment API's 40 requests per minute window.
func DefaultRetrier() Retrier {
	return Retrier{Base: 2 * time.Second, MaxAttempts: 3}
}

// Do runs fn until it succeeds, fails with a non-retryable error, or the
// attempts are exhausted. Exhausted rate limiting is returned as
// serrors.ErrPermanent wrapping the last rate-limit error.
func (r Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	base := r.Base
	if base <= 0 {
		base = time.Millisecond
	}

	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base)) //nolint: gosec

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil || !errors.Is(err, serrors.ErrRateLimited) {
			return err
		}

		if attempt < attempts {
			logger.Debug(ctx, "rate limited, backing off", zap.Int("attempt", attempt), zap.Error(err))
			if r.OnRetry != nil {
				r.OnRetry(ctx, attempt, err)
			}
		}

		return retry.RetryableError(err)
	})
	if err != nil && errors.Is(err, serrors.ErrRateLimited) {
		return serrors.Wrap(serrors.ErrPermanent, err, "rate limited after %d attempts", attempt)
	}

	return err //nolint: wrapcheck
}
