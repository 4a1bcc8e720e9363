package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product line of an order, unified across the storefront and
// the fulfillment platform.
type LineItem struct {
	// SKU may be empty for custom or legacy products.
	SKU string `json:"sku"`
	// Name is the product title; it identifies the line when SKU is empty.
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	// ExternalLineID is the upstream line identifier, kept verbatim.
	ExternalLineID string `json:"externalLineId,omitempty"`
}

// Key returns the identity used to match lines across the two sources.
func (i LineItem) Key() string {
	if i.SKU != "" {
		return i.SKU
	}

	return i.Name
}

// Order is a fulfillment or storefront order reduced to what reconciliation
// and customs synthesis need.
type Order struct {
	ID        int64      `json:"id"`
	Number    string     `json:"number"`
	Status    string     `json:"status,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []LineItem `json:"items"`
	// TagIDs lists the fulfillment tags already present on the order.
	TagIDs []int64 `json:"tagIds,omitempty"`
	// Raw is the upstream payload as decoded. Updates against full-replace APIs
	// re-send it with the changed section swapped in.
	Raw map[string]any `json:"-"`
}

// HasTag reports whether tagID is already applied to the order.
func (o Order) HasTag(tagID int64) bool {
	for _, id := range o.TagIDs {
		if id == tagID {
			return true
		}
	}

	return false
}

// OrderFilter selects candidate orders from the fulfillment platform.
type OrderFilter struct {
	Status        string
	CreatedSince  time.Time
	Page          int
	PageSize      int
	SortKey       string
	SortDirection string
}
