package shipstation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"ordersync/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// envelopeKeys are the object members that may carry the result list. The
// v1 API uses "orders" while proxies and newer endpoints answer with "data".
var envelopeKeys = map[string]bool{"orders": true, "data": true, "tags": true} //nolint: gochecknoglobals

// dateLayouts cover the timestamp shapes seen in order payloads.
var dateLayouts = []string{ //nolint: gochecknoglobals
	"2006-01-02T15:04:05.9999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// list extracts the elements of a result list from any of the supported
// envelopes: a bare array, or an object holding the array under one of
// envelopeKeys. A null body yields no elements.
func list(b []byte) ([]jx.Raw, error) {
	var out []jx.Raw
	collect := func(d *jx.Decoder) error {
		return d.Arr(func(d *jx.Decoder) error {
			raw, err := d.Raw()
			if err != nil {
				return err //nolint: wrapcheck
			}
			out = append(out, append(jx.Raw(nil), raw...))

			return nil
		})
	}

	d := jx.DecodeBytes(b)
	switch d.Next() {
	case jx.Array:
		if err := collect(d); err != nil {
			return nil, errors.Wrap(err, "decode array")
		}
	case jx.Object:
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			if envelopeKeys[key] && d.Next() == jx.Array {
				return collect(d)
			}

			return d.Skip() //nolint: wrapcheck
		}); err != nil {
			return nil, errors.Wrap(err, "decode envelope")
		}
	case jx.Null:
		return nil, nil
	default:
		return nil, errors.Errorf("unexpected envelope type %s", d.Next())
	}

	return out, nil
}

// decodeOrder maps one order object. Fields with unexpected types fall back
// to zero values; only a payload that is not an object is an error.
func decodeOrder(raw []byte) (domain.Order, error) {
	var o domain.Order

	d := jx.DecodeBytes(raw)
	if d.Next() != jx.Object {
		return o, errors.Errorf("order is %s, not an object", d.Next())
	}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "orderId":
			s, err := scalar(d)
			o.ID = toInt64(s)

			return err
		case "orderNumber":
			s, err := scalar(d)
			o.Number = s

			return err
		case "orderStatus":
			s, err := scalar(d)
			o.Status = s

			return err
		case "createDate", "orderDate":
			s, err := scalar(d)
			if t, ok := parseTime(s); ok && (o.CreatedAt.IsZero() || key == "createDate") {
				o.CreatedAt = t
			}

			return err
		case "tagIds":
			return decodeTagIDs(d, &o)
		case "items":
			return decodeItems(d, &o)
		default:
			return d.Skip() //nolint: wrapcheck
		}
	})
	if err != nil {
		return o, errors.Wrap(err, "decode order")
	}

	// Raw keeps numbers as json.Number so a re-submitted order is byte-faithful.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&o.Raw); err != nil {
		return o, errors.Wrap(err, "decode raw order")
	}

	return o, nil
}

func decodeTagIDs(d *jx.Decoder, o *domain.Order) error {
	if d.Next() != jx.Array {
		return d.Skip() //nolint: wrapcheck
	}

	return d.Arr(func(d *jx.Decoder) error { //nolint: wrapcheck
		s, err := scalar(d)
		if id := toInt64(s); id > 0 {
			o.TagIDs = append(o.TagIDs, id)
		}

		return err
	})
}

func decodeItems(d *jx.Decoder, o *domain.Order) error {
	if d.Next() != jx.Array {
		return d.Skip() //nolint: wrapcheck
	}

	return d.Arr(func(d *jx.Decoder) error { //nolint: wrapcheck
		if d.Next() != jx.Object {
			return d.Skip() //nolint: wrapcheck
		}

		var it domain.LineItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			s, err := scalar(d)
			switch key {
			case "sku":
				it.SKU = strings.TrimSpace(s)
			case "name":
				it.Name = strings.TrimSpace(s)
			case "quantity":
				it.Quantity = toInt(s)
			case "unitPrice":
				it.UnitPrice = toDecimal(s)
			case "orderItemId":
				it.ExternalLineID = s
			}

			return err
		}); err != nil {
			return err //nolint: wrapcheck
		}
		o.Items = append(o.Items, it)

		return nil
	})
}

// scalar reads the current value as text. Strings are unquoted and numbers
// kept verbatim. Null, objects and arrays are skipped and yield "".
func scalar(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.String:
		return d.Str() //nolint: wrapcheck
	case jx.Number:
		raw, err := d.Raw()

		return string(raw), err //nolint: wrapcheck
	case jx.Bool:
		b, err := d.Bool()

		return strconv.FormatBool(b), err //nolint: wrapcheck
	default:
		return "", d.Skip() //nolint: wrapcheck
	}
}

func toInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return int64(f)
	}

	return 0
}

func toInt(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(math.Floor(f))
	}

	return 0
}

func toDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}

	return d
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

type tag struct {
	ID   int64
	Name string
}

func decodeTag(raw []byte) (tag, error) {
	var t tag
	err := jx.DecodeBytes(raw).Obj(func(d *jx.Decoder, key string) error {
		s, err := scalar(d)
		switch key {
		case "tagId":
			t.ID = toInt64(s)
		case "name":
			t.Name = s
		}

		return err
	})
	if err != nil {
		return t, errors.Wrap(err, "decode tag")
	}

	return t, nil
}

// operationResult is the body of action endpoints such as addtag.
type operationResult struct {
	Success bool
	Message string
}

func decodeOperationResult(b []byte) (operationResult, error) {
	res := operationResult{Success: true}
	d := jx.DecodeBytes(b)
	if d.Next() != jx.Object {
		// some endpoints answer 200 with an empty body
		return res, nil
	}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		s, err := scalar(d)
		switch key {
		case "success":
			res.Success = s == "true"
		case "message":
			res.Message = s
		}

		return err
	})
	if err != nil {
		return res, errors.Wrap(err, "decode operation result")
	}

	return res, nil
}
