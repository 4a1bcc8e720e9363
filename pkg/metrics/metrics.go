// Package metrics defines the OpenTelemetry instruments recorded by the
// reconciliation scanner, the tagging loop and the customs service.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300} //nolint: gochecknoglobals

// Recorder wraps the instruments. The zero value is not usable; use New or Nop.
type Recorder struct {
	scanOutcomes  metric.Int64Counter
	tagResults    metric.Int64Counter
	retries       metric.Int64Counter
	declarations  metric.Int64Counter
	scanDurations metric.Float64Histogram
}

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)

	if r.scanOutcomes, err = meter.Int64Counter("ordersync.scan.outcomes",
		metric.WithDescription("Orders processed by reconciliation scans, by terminal status")); err != nil {
		return nil, err //nolint: wrapcheck
	}
	if r.tagResults, err = meter.Int64Counter("ordersync.tag.results",
		metric.WithDescription("Tag writes by result (success, skipped, failed)")); err != nil {
		return nil, err //nolint: wrapcheck
	}
	if r.retries, err = meter.Int64Counter("ordersync.remote.retries",
		metric.WithDescription("Remote calls retried after a rate limit response")); err != nil {
		return nil, err //nolint: wrapcheck
	}
	if r.declarations, err = meter.Int64Counter("ordersync.customs.declarations",
		metric.WithDescription("Customs declarations built, by result")); err != nil {
		return nil, err //nolint: wrapcheck
	}
	if r.scanDurations, err = meter.Float64Histogram("ordersync.scan.duration",
		metric.WithDescription("Wall-clock duration of reconciliation scans"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &r, nil
}

// Nop returns a recorder backed by a no-op meter.
func Nop() *Recorder {
	r, _ := New(noop.NewMeterProvider().Meter("ordersync"))

	return r
}

// ScanOutcome counts one scanned order.
func (r *Recorder) ScanOutcome(ctx context.Context, status string) {
	r.scanOutcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// TagResult counts one tag write.
func (r *Recorder) TagResult(ctx context.Context, result string) {
	r.tagResults.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// Retry counts one backoff of a remote operation.
func (r *Recorder) Retry(ctx context.Context, operation string) {
	r.retries.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// Declaration counts one customs declaration attempt.
func (r *Recorder) Declaration(ctx context.Context, result string) {
	r.declarations.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// ScanDuration records how long a scan took.
func (r *Recorder) ScanDuration(ctx context.Context, d time.Duration) {
	r.scanDurations.Record(ctx, d.Seconds())
}
