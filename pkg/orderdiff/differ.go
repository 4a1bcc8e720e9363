// Package orderdiff compares the line items of two copies of the same order.
//
// The source copy (storefront) is treated as authoritative and the mirror copy
// (fulfillment) is compared against it. Lines are matched by SKU, or by name
// when the SKU is empty. Repeated keys on one side are summed before the
// comparison so split fulfillment lines do not show up as spurious changes.
package orderdiff

import (
	"fmt"

	"ordersync/pkg/domain"
)

// aggregate is the per-key total of one side.
type aggregate struct {
	sku      string
	name     string
	quantity int
}

// index groups items by key, preserving first-seen key order.
type index struct {
	keys  []string
	items map[string]*aggregate
}

func buildIndex(items []domain.LineItem) index {
	idx := index{items: make(map[string]*aggregate, len(items))}
	for _, it := range items {
		key := it.Key()
		if key == "" {
			continue
		}
		if agg, ok := idx.items[key]; ok {
			agg.quantity += it.Quantity

			continue
		}
		idx.items[key] = &aggregate{sku: it.SKU, name: it.Name, quantity: it.Quantity}
		idx.keys = append(idx.keys, key)
	}

	return idx
}

// Compare diffs source against mirror. Records are emitted while walking the
// source keys (removed and quantity_changed) and then the mirror keys
// (added), each in first-seen order, so the output is stable for a given
// input. Prices never participate.
func Compare(source, mirror []domain.LineItem) domain.ComparisonResult {
	src := buildIndex(source)
	mir := buildIndex(mirror)

	changes := make([]domain.ChangeRecord, 0)
	for _, key := range src.keys {
		s := src.items[key]
		m, ok := mir.items[key]
		if !ok {
			changes = append(changes, removed(key, s))

			continue
		}
		if m.quantity != s.quantity {
			changes = append(changes, quantityChanged(key, s, m))
		}
	}
	for _, key := range mir.keys {
		if _, ok := src.items[key]; !ok {
			changes = append(changes, added(key, mir.items[key]))
		}
	}

	return domain.ComparisonResult{
		HasChanges:  len(changes) > 0,
		Changes:     changes,
		SourceCount: len(source),
		MirrorCount: len(mirror),
	}
}

func displayName(key string, agg *aggregate) string {
	if agg.name != "" {
		return agg.name
	}

	return key
}

func removed(key string, s *aggregate) domain.ChangeRecord {
	name := displayName(key, s)

	return domain.ChangeRecord{
		Kind:        domain.ChangeRemoved,
		SKU:         s.sku,
		Name:        name,
		Quantity:    s.quantity,
		Description: fmt.Sprintf("Removed: %s (x%d)", name, s.quantity),
	}
}

func added(key string, m *aggregate) domain.ChangeRecord {
	name := displayName(key, m)

	return domain.ChangeRecord{
		Kind:        domain.ChangeAdded,
		SKU:         m.sku,
		Name:        name,
		Quantity:    m.quantity,
		Description: fmt.Sprintf("Added: %s (x%d)", name, m.quantity),
	}
}

func quantityChanged(key string, s, m *aggregate) domain.ChangeRecord {
	name := displayName(key, s)
	direction := domain.DirectionIncreased
	if m.quantity < s.quantity {
		direction = domain.DirectionDecreased
	}

	return domain.ChangeRecord{
		Kind:        domain.ChangeQuantity,
		SKU:         s.sku,
		Name:        name,
		OldQuantity: s.quantity,
		NewQuantity: m.quantity,
		Difference:  m.quantity - s.quantity,
		Direction:   direction,
		Description: fmt.Sprintf("Quantity %s: %s (%d → %d)", direction, name, s.quantity, m.quantity),
	}
}
