package customs

import (
	"maps"

	"ordersync/pkg/domain"
	"ordersync/pkg/serrors"
)

// PayloadBuilder translates sanitized declaration lines into an order update
// for the fulfillment API. Implementations are versioned so that schema
// changes on the upstream side touch a single translation point.
type PayloadBuilder interface {
	Version() string
	Build(order domain.Order, lines []domain.DeclarationLine) (map[string]any, error)
}

// identifyingFields must be re-sent on every update because the create-order
// endpoint replaces the whole order.
var identifyingFields = []string{ //nolint: gochecknoglobals
	"orderId", "orderNumber", "orderKey", "orderDate", "orderStatus", "billTo", "shipTo",
}

// V1PayloadBuilder targets the ShipStation v1 createorder schema.
type V1PayloadBuilder struct{}

var _ PayloadBuilder = V1PayloadBuilder{}

// Version implements PayloadBuilder.
func (V1PayloadBuilder) Version() string { return "v1" }

// Build copies the original order payload and swaps in the customs section.
// It fails with serrors.ErrMalformed when the order lacks the identifying
// fields required by a full replace.
func (V1PayloadBuilder) Build(order domain.Order, lines []domain.DeclarationLine) (map[string]any, error) {
	payload := make(map[string]any, len(order.Raw)+1)
	maps.Copy(payload, order.Raw)

	if _, ok := payload["orderId"]; !ok && order.ID > 0 {
		payload["orderId"] = order.ID
	}
	if _, ok := payload["orderNumber"]; !ok && order.Number != "" {
		payload["orderNumber"] = order.Number
	}
	for _, f := range identifyingFields {
		if v, ok := payload[f]; !ok || v == nil {
			return nil, serrors.With(serrors.ErrMalformed, "order %d is missing %q", order.ID, f)
		}
	}

	items := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		item := map[string]any{
			"description":          l.Description,
			"quantity":             l.Quantity,
			"value":                l.Value.InexactFloat64(),
			"harmonizedTariffCode": l.TariffCode,
			"countryOfOrigin":      l.CountryOfOrigin,
		}
		// absent IDs are omitted; the API rejects null
		if l.ExternalLineID != nil {
			item["customsItemId"] = *l.ExternalLineID
		}
		items = append(items, item)
	}

	intl := map[string]any{}
	if existing, ok := payload["internationalOptions"].(map[string]any); ok {
		maps.Copy(intl, existing)
	}
	intl["contents"] = "merchandise"
	intl["nonDelivery"] = "return_to_sender"
	intl["customsItems"] = items
	payload["internationalOptions"] = intl

	return payload, nil
}
