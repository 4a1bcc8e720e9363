package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ordersync/internal/config"
	"ordersync/pkg/domain"
	"ordersync/pkg/logger"
	"ordersync/pkg/metrics"
	"ordersync/pkg/orderdiff"
	"ordersync/pkg/pacing"
	"ordersync/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ScanRequest selects the candidate orders of a scan. Zero values fall back
// to the scanner Options.
type ScanRequest struct {
	Status       string    `json:"status"`
	CreatedSince time.Time `json:"createdSince"`
	PageSize     int       `json:"pageSize"`
	// MaxPages and MaxOrders cap pagination. Zero means the configured cap,
	// a negative value means no cap.
	MaxPages  int `json:"maxPages"`
	MaxOrders int `json:"maxOrders"`
}

// Options configure the scanner. These settings are typically derived from
// application configuration.
type Options struct {
	// TagName is the reconciliation tag resolved after each scan.
	TagName string
	// Status and Lookback provide the default candidate filter.
	Status   string
	Lookback time.Duration
	PageSize int
	MaxPages int
	// MaxOrders caps the candidates of a single scan.
	MaxOrders int
	// CounterpartPrefix is prepended to numeric order numbers before the
	// storefront lookup.
	CounterpartPrefix string
	// Pacer spaces consecutive tag writes.
	Pacer pacing.Pacer
	// Retrier wraps every remote call.
	Retrier  pacing.Retrier
	Recorder *metrics.Recorder
	Tracer   trace.Tracer
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		TagName:           cfg.Reconcile.TagName,
		Status:            cfg.Reconcile.Status,
		Lookback:          cfg.Reconcile.Lookback,
		PageSize:          cfg.Reconcile.PageSize,
		MaxPages:          cfg.Reconcile.MaxPages,
		MaxOrders:         cfg.Reconcile.MaxOrders,
		CounterpartPrefix: cfg.Reconcile.CounterpartPrefix,
		Pacer:             pacing.NewIntervalPacer(cfg.Reconcile.TagInterval),
		Retrier: pacing.Retrier{
			Base:        cfg.Retry.Base,
			MaxAttempts: cfg.Retry.MaxAttempts,
		},
	}
}

const defaultPageSize = 100

// scanner is the concrete implementation of the Reconciler interface.
// Every scan and batch owns its accumulators; the struct itself is read-only
// after construction.
type scanner struct {
	options    Options
	source     OrderSource
	storefront Storefront
	tags       TagService
}

// New creates a Reconciler backed by the given collaborators.
func New(source OrderSource, storefront Storefront, tags TagService, options Options) Reconciler {
	if options.PageSize <= 0 {
		options.PageSize = defaultPageSize
	}
	if options.Pacer == nil {
		options.Pacer = pacing.Unlimited
	}
	if options.Retrier.MaxAttempts == 0 {
		options.Retrier = pacing.DefaultRetrier()
	}
	if options.Recorder == nil {
		options.Recorder = metrics.Nop()
	}
	if options.Tracer == nil {
		options.Tracer = otel.Tracer("ordersync/internal/reconcile")
	}
	if options.Retrier.OnRetry == nil {
		recorder := options.Recorder
		options.Retrier.OnRetry = func(ctx context.Context, _ int, _ error) {
			recorder.Retry(ctx, "reconcile")
		}
	}

	return &scanner{
		options:    options,
		source:     source,
		storefront: storefront,
		tags:       tags,
	}
}

// Scan implements Reconciler.
func (s *scanner) Scan(ctx context.Context, req ScanRequest) (*domain.ScanSummary, error) {
	start := time.Now()
	req = s.withDefaults(req)

	ctx, span := s.options.Tracer.Start(ctx, "reconcile.Scan", trace.WithAttributes(
		attribute.String("status", req.Status),
		attribute.Int("pageSize", req.PageSize),
	))
	defer span.End()

	candidates, truncated, err := s.fetch(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")

		return nil, fmt.Errorf("could not fetch orders: %w", err)
	}

	summary := &domain.ScanSummary{
		Outcomes:  make([]domain.ScanOutcome, 0, len(candidates)),
		Truncated: truncated,
	}
	for _, order := range candidates {
		outcome := s.reconcile(ctx, order)
		tally(summary, outcome)
		s.options.Recorder.ScanOutcome(ctx, string(outcome.Status))
	}

	s.enrich(ctx, summary, candidates)

	span.SetAttributes(
		attribute.Int("scanned", summary.Scanned),
		attribute.Int("withChanges", summary.WithChanges),
		attribute.Bool("truncated", summary.Truncated),
	)
	s.options.Recorder.ScanDuration(ctx, time.Since(start))
	logger.Info(ctx, "reconciliation scan finished",
		zap.Int("scanned", summary.Scanned),
		zap.Int("withChanges", summary.WithChanges),
		zap.Int("unmatched", summary.Unmatched),
		zap.Int("errors", summary.Errors),
		zap.Bool("truncated", summary.Truncated),
	)

	return summary, nil
}

func (s *scanner) withDefaults(req ScanRequest) ScanRequest {
	if req.Status == "" {
		req.Status = s.options.Status
	}
	if req.CreatedSince.IsZero() && s.options.Lookback > 0 {
		req.CreatedSince = time.Now().Add(-s.options.Lookback)
	}
	if req.PageSize <= 0 {
		req.PageSize = s.options.PageSize
	}
	if req.MaxPages == 0 {
		req.MaxPages = s.options.MaxPages
	}
	if req.MaxOrders == 0 {
		req.MaxOrders = s.options.MaxOrders
	}

	return req
}

// fetch pages through the candidate feed. It keeps going while full pages come
// back and the caps allow. The returned flag reports that more candidates may
// exist than were returned.
func (s *scanner) fetch(ctx context.Context, req ScanRequest) ([]domain.Order, bool, error) {
	var orders []domain.Order
	for page := 1; ; page++ {
		var batch []domain.Order
		err := s.options.Retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			batch, err = s.source.SearchOrders(ctx, domain.OrderFilter{
				Status:        req.Status,
				CreatedSince:  req.CreatedSince,
				Page:          page,
				PageSize:      req.PageSize,
				SortKey:       "CreateDate",
				SortDirection: "DESC",
			})

			return err //nolint: wrapcheck
		})
		if err != nil {
			if page == 1 {
				return nil, false, err
			}
			logger.Warn(ctx, "could not fetch page, scan truncated", zap.Int("page", page), zap.Error(err))

			return orders, true, nil
		}

		for _, o := range batch {
			if req.MaxOrders > 0 && len(orders) >= req.MaxOrders {
				return orders, true, nil
			}
			orders = append(orders, o)
		}

		if len(batch) < req.PageSize {
			return orders, false, nil
		}
		if (req.MaxPages > 0 && page >= req.MaxPages) || (req.MaxOrders > 0 && len(orders) >= req.MaxOrders) {
			return orders, true, nil
		}
	}
}

// reconcile runs the match and compare phases for one candidate. Any failure,
// panics included, ends in an outcome and never escapes.
func (s *scanner) reconcile(ctx context.Context, order domain.Order) (outcome domain.ScanOutcome) {
	ctx = logger.WithFields(ctx, zap.Int64("orderID", order.ID), zap.String("orderNumber", order.Number))
	outcome = domain.ScanOutcome{OrderID: order.ID, OrderNumber: order.Number}

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "order reconciliation panicked", zap.Any("panic", p))
			outcome.Status = domain.ScanStatusError
			outcome.Error = fmt.Sprint(p)
			outcome.Changes = nil
			outcome.ChangeCount = 0
		}
	}()

	number := s.counterpartNumber(order.Number)
	var counterpart *domain.Order
	err := s.options.Retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		counterpart, err = s.storefront.OrderByNumber(ctx, number)

		return err //nolint: wrapcheck
	})
	if err != nil {
		logger.Debug(ctx, "counterpart lookup failed", zap.String("lookup", number), zap.Error(err))
		outcome.Status = domain.ScanStatusNoMatch
		outcome.Error = err.Error()

		return outcome
	}
	if counterpart == nil {
		logger.Debug(ctx, "no counterpart found", zap.String("lookup", number))
		outcome.Status = domain.ScanStatusNoMatch

		return outcome
	}

	outcome.CounterpartMatched = true
	outcome.CounterpartID = counterpart.ID

	result := orderdiff.Compare(counterpart.Items, order.Items)
	outcome.ChangeCount = len(result.Changes)
	if result.HasChanges {
		outcome.Status = domain.ScanStatusHasChanges
		outcome.Changes = result.Changes
	} else {
		outcome.Status = domain.ScanStatusNoChanges
	}
	logger.Debug(ctx, "order reconciled", zap.String("status", string(outcome.Status)), zap.Int("changes", outcome.ChangeCount))

	return outcome
}

// counterpartNumber applies the storefront prefix to purely numeric numbers:
// "1001" becomes "#1001" while "SO-1001" is looked up as is.
func (s *scanner) counterpartNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" || s.options.CounterpartPrefix == "" {
		return number
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return number
		}
	}

	return s.options.CounterpartPrefix + number
}

func tally(summary *domain.ScanSummary, outcome domain.ScanOutcome) {
	summary.Outcomes = append(summary.Outcomes, outcome)
	summary.Scanned++
	switch outcome.Status {
	case domain.ScanStatusHasChanges:
		summary.WithChanges++
	case domain.ScanStatusNoChanges:
		summary.WithoutChanges++
	case domain.ScanStatusNoMatch:
		summary.Unmatched++
	case domain.ScanStatusError:
		summary.Errors++
	}
}

// enrich resolves the reconciliation tag once and flags the changed orders
// that already carry it. It never writes tags.
func (s *scanner) enrich(ctx context.Context, summary *domain.ScanSummary, candidates []domain.Order) {
	if summary.WithChanges == 0 || s.options.TagName == "" {
		return
	}

	tagID, err := s.tagID(ctx, s.options.TagName)
	if err != nil {
		logger.Warn(ctx, "could not resolve reconciliation tag", zap.String("tag", s.options.TagName), zap.Error(err))

		return
	}
	summary.TagID = tagID

	for i := range summary.Outcomes {
		if summary.Outcomes[i].Status == domain.ScanStatusHasChanges {
			summary.Outcomes[i].AlreadyTagged = candidates[i].HasTag(tagID)
		}
	}
}

func (s *scanner) tagID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.options.Retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.tags.TagIDByName(ctx, name)

		return err //nolint: wrapcheck
	})
	if err != nil {
		return 0, fmt.Errorf("could not resolve tag %q: %w", name, err)
	}
	if id == 0 {
		return 0, serrors.With(serrors.ErrNotFound, "tag %q not found", name)
	}

	return id, nil
}

// BulkTag implements Reconciler. Orders are tagged strictly one after another
// with the pacer consulted between consecutive orders. Results follow the
// order of orderIDs.
func (s *scanner) BulkTag(ctx context.Context, orderIDs []int64, tagID int64) domain.BulkTagResult {
	ctx, span := s.options.Tracer.Start(ctx, "reconcile.BulkTag", trace.WithAttributes(
		attribute.Int64("tagID", tagID),
		attribute.Int("orders", len(orderIDs)),
	))
	defer span.End()

	res := domain.BulkTagResult{Errors: []domain.TagError{}}
	for i, id := range orderIDs {
		err := s.tagOne(ctx, i, id, tagID)
		switch {
		case err == nil:
			res.Success++
			s.options.Recorder.TagResult(ctx, "success")
		case alreadyTagged(err):
			res.Skipped++
			s.options.Recorder.TagResult(ctx, "skipped")
			logger.Debug(ctx, "order already tagged", zap.Int64("orderID", id))
		default:
			res.Failed++
			res.Errors = append(res.Errors, domain.TagError{OrderID: id, Error: err.Error()})
			s.options.Recorder.TagResult(ctx, "failed")
			logger.Warn(ctx, "could not tag order", zap.Int64("orderID", id), zap.Error(err))
		}
	}

	span.SetAttributes(
		attribute.Int("success", res.Success),
		attribute.Int("skipped", res.Skipped),
		attribute.Int("failed", res.Failed),
	)
	logger.Info(ctx, "bulk tagging finished",
		zap.Int64("tagID", tagID),
		zap.Int("success", res.Success),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)

	return res
}

func (s *scanner) tagOne(ctx context.Context, position int, orderID, tagID int64) error {
	if position > 0 {
		if err := s.options.Pacer.Wait(ctx); err != nil {
			return fmt.Errorf("could not wait for pacer: %w", err)
		}
	}

	return s.options.Retrier.Do(ctx, func(ctx context.Context) error {
		return s.tags.AddTag(ctx, orderID, tagID) //nolint: wrapcheck
	})
}

// alreadyTagged reports whether a tag write failed only because the tag is
// present. Clients report it with serrors.ErrAlreadyTagged; the message check
// covers collaborators that only describe it in text. Rate limiting, even
// after the retries ran out, is never a skip: the order was not tagged.
func alreadyTagged(err error) bool {
	if errors.Is(err, serrors.ErrAlreadyTagged) {
		return true
	}
	if errors.Is(err, serrors.ErrRateLimited) {
		return false
	}

	return strings.Contains(strings.ToLower(err.Error()), "already")
}

// TagByName implements Reconciler.
func (s *scanner) TagByName(ctx context.Context, orderIDs []int64, tagName string) (*domain.BulkTagResult, error) {
	if tagName == "" {
		tagName = s.options.TagName
	}
	if tagName == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "tag name is required")
	}

	tagID, err := s.tagID(ctx, tagName)
	if err != nil {
		return nil, err
	}

	res := s.BulkTag(ctx, orderIDs, tagID)

	return &res, nil
}
