package customs

import (
	"context"
	"fmt"

	"ordersync/pkg/domain"
	"ordersync/pkg/logger"
	"ordersync/pkg/metrics"
	"ordersync/pkg/pacing"
	"ordersync/pkg/serrors"

	"go.uber.org/zap"
)

// OrderStore reads and replaces fulfillment orders.
type OrderStore interface {
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	SubmitOrder(ctx context.Context, payload map[string]any) (*domain.Order, error)
}

// Options configure a Service. Zero values fall back to sensible defaults.
type Options struct {
	Builder  PayloadBuilder
	Pacer    pacing.Pacer
	Retrier  pacing.Retrier
	Recorder *metrics.Recorder
}

// Service fetches orders, builds their customs declarations and submits them.
type Service struct {
	synth    *Synthesizer
	store    OrderStore
	builder  PayloadBuilder
	pacer    pacing.Pacer
	retrier  pacing.Retrier
	recorder *metrics.Recorder
}

// NewService wires a Service around the given catalog and order store.
func NewService(catalog TariffLookup, store OrderStore, opts Options) *Service {
	if opts.Builder == nil {
		opts.Builder = V1PayloadBuilder{}
	}
	if opts.Pacer == nil {
		opts.Pacer = pacing.Unlimited
	}
	if opts.Retrier.MaxAttempts == 0 {
		opts.Retrier = pacing.DefaultRetrier()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Nop()
	}
	if opts.Retrier.OnRetry == nil {
		recorder := opts.Recorder
		opts.Retrier.OnRetry = func(ctx context.Context, _ int, _ error) {
			recorder.Retry(ctx, "customs")
		}
	}

	return &Service{
		synth:    NewSynthesizer(catalog),
		store:    store,
		builder:  opts.Builder,
		pacer:    opts.Pacer,
		retrier:  opts.Retrier,
		recorder: opts.Recorder,
	}
}

// Lines synthesizes and sanitizes declaration lines for raw items.
func (s *Service) Lines(items []RawItem) []domain.DeclarationLine {
	return Sanitize(s.synth.Synthesize(items))
}

// Preview returns the sanitized declaration for an order without submitting it.
func (s *Service) Preview(ctx context.Context, orderID int64) ([]domain.DeclarationLine, error) {
	order, err := s.fetch(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return Sanitize(s.synth.SynthesizeItems(order.Items)), nil
}

// Declare builds the declaration for an order and submits it as a full order
// replace. It returns the submitted lines.
func (s *Service) Declare(ctx context.Context, orderID int64) ([]domain.DeclarationLine, error) {
	ctx = logger.WithFields(ctx, zap.Int64("orderID", orderID))

	order, err := s.fetch(ctx, orderID)
	if err != nil {
		s.recorder.Declaration(ctx, "failed")

		return nil, err
	}

	lines := Sanitize(s.synth.SynthesizeItems(order.Items))
	payload, err := s.builder.Build(*order, lines)
	if err != nil {
		s.recorder.Declaration(ctx, "failed")

		return nil, fmt.Errorf("could not build %s payload: %w", s.builder.Version(), err)
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("could not wait for pacer: %w", err)
	}
	err = s.retrier.Do(ctx, func(ctx context.Context) error {
		_, err := s.store.SubmitOrder(ctx, payload)

		return err //nolint: wrapcheck
	})
	if err != nil {
		s.recorder.Declaration(ctx, "failed")

		return nil, fmt.Errorf("could not submit order: %w", err)
	}

	s.recorder.Declaration(ctx, "submitted")
	logger.Info(ctx, "customs declaration submitted", zap.Int("lines", len(lines)))

	return lines, nil
}

// DeclareError describes a failed declaration in a batch.
type DeclareError struct {
	OrderID int64  `json:"orderId"`
	Error   string `json:"error"`
}

// BatchResult summarizes DeclareBatch.
type BatchResult struct {
	Submitted int            `json:"submitted"`
	Failed    int            `json:"failed"`
	Errors    []DeclareError `json:"errors"`
}

// DeclareBatch declares each order in turn. Failures are recorded per order
// and never stop the batch.
func (s *Service) DeclareBatch(ctx context.Context, orderIDs []int64) BatchResult {
	res := BatchResult{Errors: []DeclareError{}}
	for _, id := range orderIDs {
		if _, err := s.Declare(ctx, id); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, DeclareError{OrderID: id, Error: err.Error()})

			continue
		}
		res.Submitted++
	}

	return res
}

func (s *Service) fetch(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := s.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("could not wait for pacer: %w", err)
	}

	var order *domain.Order
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		o, err := s.store.GetOrder(ctx, orderID)
		order = o

		return err //nolint: wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("could not get order %d: %w", orderID, err)
	}
	if order == nil {
		return nil, serrors.With(serrors.ErrNotFound, "order %d not found", orderID)
	}

	return order, nil
}
