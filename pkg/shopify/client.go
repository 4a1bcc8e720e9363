// Package shopify provides a minimal client for the Shopify Admin REST API,
// the authoritative side of order reconciliation.
package shopify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ordersync/pkg/domain"
	"ordersync/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// DefaultAPIVersion is used when Options.APIVersion is empty.
const DefaultAPIVersion = "2024-01"

// Options configure a Client.
type Options struct {
	// ShopDomain is "shop.myshopify.com" or a full base URL.
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// Client reads orders from one shop. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	version    string
}

// New constructs a Client that uses the provided http.Client.
func New(httpClient *http.Client, opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.ShopDomain), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	version := opts.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		token:      opts.AccessToken,
		version:    version,
	}
}

// OrderByNumber returns the order whose name is number (for example "#1001"),
// in any status. It returns (nil, nil) when the shop has no such order.
func (c *Client) OrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	q := url.Values{}
	q.Set("name", number)
	q.Set("status", "any")
	u := fmt.Sprintf("%s/admin/api/%s/orders.json?%s", c.baseURL, c.version, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited (retry after %q)", resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, serrors.With(serrors.ErrPermanent, "order lookup failed with %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	order, err := decodeFirstOrder(b)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformed, err, "could not decode orders")
	}

	return order, nil
}

// decodeFirstOrder reads {"orders":[...]} and maps the first element.
func decodeFirstOrder(b []byte) (*domain.Order, error) {
	var (
		order *domain.Order
		found bool
	)
	err := jx.DecodeBytes(b).Obj(func(d *jx.Decoder, key string) error {
		if key != "orders" || d.Next() != jx.Array {
			return d.Skip() //nolint: wrapcheck
		}

		return d.Arr(func(d *jx.Decoder) error {
			if found || d.Next() != jx.Object {
				return d.Skip() //nolint: wrapcheck
			}
			found = true
			o, err := decodeOrder(d)
			order = &o

			return err
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode orders envelope")
	}

	return order, nil
}

func decodeOrder(d *jx.Decoder) (domain.Order, error) {
	var o domain.Order
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			s, err := scalar(d)
			o.ID, _ = strconv.ParseInt(s, 10, 64)

			return err
		case "name":
			s, err := scalar(d)
			o.Number = s

			return err
		case "financial_status":
			s, err := scalar(d)
			o.Status = s

			return err
		case "line_items":
			if d.Next() != jx.Array {
				return d.Skip() //nolint: wrapcheck
			}

			return d.Arr(func(d *jx.Decoder) error { //nolint: wrapcheck
				if d.Next() != jx.Object {
					return d.Skip() //nolint: wrapcheck
				}
				it, err := decodeLineItem(d)
				o.Items = append(o.Items, it)

				return err
			})
		default:
			return d.Skip() //nolint: wrapcheck
		}
	})

	return o, err //nolint: wrapcheck
}

func decodeLineItem(d *jx.Decoder) (domain.LineItem, error) {
	var (
		it    domain.LineItem
		title string
		name  string
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		s, err := scalar(d)
		switch key {
		case "id":
			it.ExternalLineID = s
		case "sku":
			it.SKU = strings.TrimSpace(s)
		case "title":
			title = strings.TrimSpace(s)
		case "name":
			name = strings.TrimSpace(s)
		case "quantity":
			it.Quantity, _ = strconv.Atoi(s)
		case "price":
			if p, perr := decimal.NewFromString(s); perr == nil {
				it.UnitPrice = p
			}
		}

		return err
	})

	// the product title matches the fulfillment item name; the line name
	// carries the variant suffix
	it.Name = title
	if it.Name == "" {
		it.Name = name
	}

	return it, err //nolint: wrapcheck
}

func scalar(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.String:
		return d.Str() //nolint: wrapcheck
	case jx.Number:
		raw, err := d.Raw()

		return string(raw), err //nolint: wrapcheck
	default:
		return "", d.Skip() //nolint: wrapcheck
	}
}
