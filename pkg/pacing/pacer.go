// Package pacing keeps outbound calls to the fulfillment and storefront APIs
// under their fixed per-minute ceilings.
//
// A Pacer spaces consecutive calls; a Retrier re-issues a single call that was
// rejected with HTTP 429. Both are injected into the scanner and the customs
// service so tests can run without wall-clock delays.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next call may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer enforces a minimum interval between calls using a token
// bucket with a single token. The first call passes immediately.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a pacer that lets one call through every interval.
// A non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &IntervalPacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a token is available or ctx is done.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx) //nolint: wrapcheck
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }

// Unlimited is a Pacer that never waits.
var Unlimited Pacer = unlimited{} //nolint: gochecknoglobals
