// Package customs builds customs declarations for cross-border shipments.
//
// Synthesis maps order lines to tariff metadata; sanitization then forces
// every field into the domain the fulfillment API accepts. The two steps are
// separate so the business mapping and the schema rules can evolve and be
// tested independently.
package customs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"ordersync/pkg/domain"
	"ordersync/pkg/tariff"

	"github.com/shopspring/decimal"
)

// TariffLookup resolves a SKU to a tariff record. *tariff.Catalog implements it.
type TariffLookup interface {
	Lookup(sku string) domain.TariffRecord
}

var _ TariffLookup = (*tariff.Catalog)(nil)

// RawItem is an order line as received from upstream, before any type
// coercion. Quantity, UnitPrice and LineID accept numbers, numeric strings or
// nothing at all.
type RawItem struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  any    `json:"quantity"`
	UnitPrice any    `json:"unitPrice"`
	LineID    any    `json:"lineId"`
}

// Synthesizer converts order lines to declaration lines.
type Synthesizer struct {
	catalog TariffLookup
}

// NewSynthesizer returns a Synthesizer resolving tariffs through catalog.
func NewSynthesizer(catalog TariffLookup) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// Synthesize builds one raw declaration line per item. Quantity defaults to 1
// when missing or not numeric and the declared per-unit value defaults to 0.
// The output is not sanitized.
func (s *Synthesizer) Synthesize(items []RawItem) []domain.DeclarationLine {
	lines := make([]domain.DeclarationLine, 0, len(items))
	for _, it := range items {
		key := it.SKU
		if strings.TrimSpace(key) == "" {
			key = it.Name
		}
		rec := s.catalog.Lookup(key)

		quantity, ok := toInt(it.Quantity)
		if !ok {
			quantity = 1
		}
		value, ok := toDecimal(it.UnitPrice)
		if !ok {
			value = decimal.Zero
		}

		description := rec.Description
		if rec.TariffCode == tariff.DefaultTariffCode && strings.TrimSpace(it.Name) != "" {
			// the generic description says nothing to a customs officer
			description = it.Name
		}

		lines = append(lines, domain.DeclarationLine{
			Description:     description,
			Quantity:        quantity,
			Value:           value,
			TariffCode:      rec.TariffCode,
			CountryOfOrigin: rec.CountryOfOrigin,
			ExternalLineID:  positiveID(it.LineID),
		})
	}

	return lines
}

// SynthesizeItems is Synthesize for typed line items.
func (s *Synthesizer) SynthesizeItems(items []domain.LineItem) []domain.DeclarationLine {
	raw := make([]RawItem, 0, len(items))
	for _, it := range items {
		raw = append(raw, RawItem{
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineID:    it.ExternalLineID,
		})
	}

	return s.Synthesize(raw)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}

		return int(math.Floor(n)), true
	case json.Number:
		return toInt(string(n))
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toInt(f)
		}
	}

	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}

		return decimal.NewFromFloat(n), true
	case json.Number:
		return toDecimal(string(n))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))

		return d, err == nil
	}

	return decimal.Zero, false
}

// positiveID returns v as a positive integer ID, or nil when it is absent,
// not an integer, or not positive.
func positiveID(v any) *int64 {
	var id int64
	switch n := v.(type) {
	case nil:
		return nil
	case *int64:
		if n == nil {
			return nil
		}
		id = *n
	case int:
		id = int64(n)
	case int64:
		id = n
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 {
			return nil
		}
		id = int64(n)
	case json.Number:
		return positiveID(string(n))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil
		}
		id = i
	default:
		return nil
	}
	if id <= 0 {
		return nil
	}

	return &id
}
