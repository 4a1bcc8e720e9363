package pacing_test

import (
	"context"
	"errors"
	"ordersync/pkg/pacing"
	"ordersync/pkg/serrors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIntervalPacer_FirstCallImmediate(t *testing.T) {
	p := pacing.NewIntervalPacer(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Wait(ctx))

	// the second token is an hour away, beyond the deadline
	require.Error(t, p.Wait(ctx))
}

func TestIntervalPacer_SpacesCalls(t *testing.T) {
	p := pacing.NewIntervalPacer(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		require.NoError(t, p.Wait(ctx))
	}
	require.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}

func TestIntervalPacer_Disabled(t *testing.T) {
	p := pacing.NewIntervalPacer(0)
	for range 100 {
		require.NoError(t, p.Wait(context.Background()))
	}
	require.NoError(t, pacing.Unlimited.Wait(context.Background()))
}

func TestRetrier_SucceedsAfterRateLimit(t *testing.T) {
	var retried []int
	r := pacing.Retrier{
		Base:        time.Millisecond,
		MaxAttempts: 3,
		OnRetry:     func(_ context.Context, attempt int, _ error) { retried = append(retried, attempt) },
	}

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return serrors.With(serrors.ErrRateLimited, "slow down")
		}

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, []int{1, 2}, retried)
}

func TestRetrier_ExhaustedBecomesPermanent(t *testing.T) {
	r := pacing.Retrier{Base: time.Millisecond, MaxAttempts: 2}

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++

		return serrors.With(serrors.ErrRateLimited, "slow down")
	})
	require.Equal(t, 2, calls)
	require.ErrorIs(t, err, serrors.ErrPermanent)
	require.ErrorIs(t, err, serrors.ErrRateLimited)
}

func TestRetrier_DoesNotRetryOtherErrors(t *testing.T) {
	r := pacing.Retrier{Base: time.Millisecond, MaxAttempts: 5}
	boom := errors.New("boom")

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++

		return boom
	})
	require.Equal(t, 1, calls)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, serrors.ErrPermanent)
}

func TestRetrier_BackoffDoubles(t *testing.T) {
	r := pacing.Retrier{Base: 20 * time.Millisecond, MaxAttempts: 3}

	start := time.Now()
	_ = r.Do(context.Background(), func(context.Context) error {
		return serrors.KindOnly(serrors.ErrRateLimited)
	})
	// 20ms + 40ms of backoff between the three attempts
	require.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
}
