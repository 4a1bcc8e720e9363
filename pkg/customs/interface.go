package customs

import (
	"context"

	"ordersync/pkg/domain"
)

// Declarer is the customs surface used by the API and the CLI. *Service
// implements it.
//
//go:generate mockgen -package mockcustoms -source=interface.go -destination=mock/mockcustoms.go *
type Declarer interface {
	// Lines synthesizes and sanitizes declaration lines for raw items.
	Lines(items []RawItem) []domain.DeclarationLine
	// Preview returns the declaration for an order without submitting it.
	Preview(ctx context.Context, orderID int64) ([]domain.DeclarationLine, error)
	// Declare submits the declaration for an order.
	Declare(ctx context.Context, orderID int64) ([]domain.DeclarationLine, error)
	// DeclareBatch declares each order in turn.
	DeclareBatch(ctx context.Context, orderIDs []int64) BatchResult
}

var _ Declarer = (*Service)(nil)
