package reconcile

import (
	"context"

	"ordersync/pkg/domain"
)

//go:generate mockgen -package mockreconcile -source=interface.go -destination=mock/mockreconcile.go *

// Reconciler compares fulfillment orders with their storefront counterparts
// and tags the ones that drifted.
type Reconciler interface {
	// Scan walks the fulfillment order feed and diffs every candidate against
	// its storefront counterpart. Only a failure to fetch the first page is
	// returned as an error; everything else is reported per order.
	Scan(ctx context.Context, req ScanRequest) (*domain.ScanSummary, error)
	// BulkTag applies tagID to each order in turn.
	BulkTag(ctx context.Context, orderIDs []int64, tagID int64) domain.BulkTagResult
	// TagByName resolves tagName (the configured tag when empty) and bulk-tags
	// the orders with it.
	TagByName(ctx context.Context, orderIDs []int64, tagName string) (*domain.BulkTagResult, error)
}

// OrderSource lists candidate orders from the fulfillment platform.
type OrderSource interface {
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// Storefront finds the authoritative copy of an order. A missing order is
// reported as (nil, nil).
type Storefront interface {
	OrderByNumber(ctx context.Context, number string) (*domain.Order, error)
}

// TagService manages fulfillment tags. TagIDByName fails with
// serrors.ErrNotFound when no tag has the name. AddTag may fail with
// serrors.ErrAlreadyTagged or with a message mentioning "already".
type TagService interface {
	TagIDByName(ctx context.Context, name string) (int64, error)
	AddTag(ctx context.Context, orderID int64, tagID int64) error
}
