package shipstation_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"ordersync/pkg/domain"
	"ordersync/pkg/serrors"
	"ordersync/pkg/shipstation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *shipstation.Client {
	return shipstation.New(&http.Client{Transport: fn}, shipstation.Options{
		BaseURL:   "https://ss.test/",
		APIKey:    "key",
		APISecret: "secret",
	})
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

const orderJSON = `{
	"orderId": 123,
	"orderNumber": "1001",
	"orderKey": "k1",
	"orderStatus": "awaiting_shipment",
	"createDate": "2024-03-01T10:15:00.0000000",
	"tagIds": [5, "7", null],
	"items": [
		{"sku": " PLNR-A5 ", "name": "Planner", "quantity": 2, "unitPrice": 24.5, "orderItemId": 991},
		{"sku": null, "name": "Sticker pack", "quantity": "3", "unitPrice": "x", "orderItemId": null, "options": [{"name": "c"}]}
	],
	"billTo": {"name": "A"}
}`

func TestParseRateLimit(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	h := http.Header{}
	h.Set("X-Rate-Limit-Limit", "40")
	h.Set("X-Rate-Limit-Remaining", "12")
	h.Set("X-Rate-Limit-Reset", "30")

	rl := shipstation.ParseRateLimit(h, now)
	require.Equal(t, 40, rl.Limit)
	require.Equal(t, 12, rl.Remaining)
	require.True(t, rl.ResetAt.Equal(now.Add(30*time.Second)))

	require.Equal(t, shipstation.RateLimitStatus{ResetAt: now}, shipstation.ParseRateLimit(http.Header{}, now))
}

func TestClient_SearchOrders(t *testing.T) {
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "ss.test", r.URL.Host)
		require.Equal(t, "/orders", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "awaiting_shipment", q.Get("orderStatus"))
		require.Equal(t, "2024-03-01 00:00:00", q.Get("createDateStart"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "50", q.Get("pageSize"))
		require.Equal(t, "CreateDate", q.Get("sortBy"))
		require.Equal(t, "DESC", q.Get("sortDir"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key", user)
		require.Equal(t, "secret", pass)

		return respond(http.StatusOK, `{"orders":[`+orderJSON+`, 42],"total":1,"page":2,"pages":2}`), nil
	})

	orders, err := c.SearchOrders(context.Background(), domain.OrderFilter{
		Status:        "awaiting_shipment",
		CreatedSince:  since,
		Page:          2,
		PageSize:      50,
		SortKey:       "CreateDate",
		SortDirection: "DESC",
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	require.Equal(t, int64(123), o.ID)
	require.Equal(t, "1001", o.Number)
	require.Equal(t, "awaiting_shipment", o.Status)
	require.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), o.CreatedAt)
	require.Equal(t, []int64{5, 7}, o.TagIDs)
	require.Len(t, o.Items, 2)
	require.Equal(t, "PLNR-A5", o.Items[0].SKU)
	require.Equal(t, 2, o.Items[0].Quantity)
	require.True(t, o.Items[0].UnitPrice.Equal(decimal.RequireFromString("24.5")))
	require.Equal(t, "991", o.Items[0].ExternalLineID)
	require.Equal(t, "", o.Items[1].SKU)
	require.Equal(t, 3, o.Items[1].Quantity)
	require.True(t, o.Items[1].UnitPrice.IsZero())
	require.Equal(t, "", o.Items[1].ExternalLineID)

	require.Equal(t, json.Number("123"), o.Raw["orderId"])
	require.Equal(t, "k1", o.Raw["orderKey"])
}

func TestClient_SearchOrders_Envelopes(t *testing.T) {
	for name, body := range map[string]string{
		"bare array": `[` + orderJSON + `]`,
		"data":       `{"data":[` + orderJSON + `]}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(func(*http.Request) (*http.Response, error) {
				return respond(http.StatusOK, body), nil
			})

			orders, err := c.SearchOrders(context.Background(), domain.OrderFilter{})
			require.NoError(t, err)
			require.Len(t, orders, 1)
			require.Equal(t, int64(123), orders[0].ID)
		})
	}

	t.Run("null", func(t *testing.T) {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `null`), nil
		})

		orders, err := c.SearchOrders(context.Background(), domain.OrderFilter{})
		require.NoError(t, err)
		require.Empty(t, orders)
	})

	t.Run("garbage", func(t *testing.T) {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `"nope"`), nil
		})

		_, err := c.SearchOrders(context.Background(), domain.OrderFilter{})
		require.ErrorIs(t, err, serrors.ErrMalformed)
	})
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   serrors.Kind
	}{
		{http.StatusTooManyRequests, serrors.ErrRateLimited},
		{http.StatusNotFound, serrors.ErrNotFound},
		{http.StatusInternalServerError, serrors.ErrPermanent},
		{http.StatusUnauthorized, serrors.ErrPermanent},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := newTestClient(func(*http.Request) (*http.Response, error) {
				return respond(tc.status, `{"message":"nope"}`), nil
			})

			_, err := c.GetOrder(context.Background(), 1)
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestClient_GetOrder(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/orders/123", r.URL.Path)

		return respond(http.StatusOK, orderJSON), nil
	})

	o, err := c.GetOrder(context.Background(), 123)
	require.NoError(t, err)
	require.Equal(t, "1001", o.Number)
}

func TestClient_TagIDByName(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/accounts/listtags", r.URL.Path)

		return respond(http.StatusOK, `[{"tagId":3,"name":"Rush","color":"#f00"},{"tagId":"9","name":"Order Changed"}]`), nil
	})

	id, err := c.TagIDByName(context.Background(), "order changed")
	require.NoError(t, err)
	require.Equal(t, int64(9), id)

	_, err = c.TagIDByName(context.Background(), "Missing")
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestClient_AddTag(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newTestClient(func(r *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/orders/addtag", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.JSONEq(t, `{"orderId":12,"tagId":9}`, string(b))

			return respond(http.StatusOK, `{"success":true,"message":"Tag added successfully."}`), nil
		})

		require.NoError(t, c.AddTag(context.Background(), 12, 9))
	})

	t.Run("already applied in body", func(t *testing.T) {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"success":false,"message":"Tag already applied to this order"}`), nil
		})

		err := c.AddTag(context.Background(), 12, 9)
		require.ErrorIs(t, err, serrors.ErrAlreadyTagged)
	})

	t.Run("already applied as 400", func(t *testing.T) {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusBadRequest, `{"Message":"The tag is already on the order"}`), nil
		})

		err := c.AddTag(context.Background(), 12, 9)
		require.ErrorIs(t, err, serrors.ErrAlreadyTagged)
		require.ErrorIs(t, err, serrors.ErrPermanent)
	})

	t.Run("rejected", func(t *testing.T) {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"success":false,"message":"order is shipped"}`), nil
		})

		err := c.AddTag(context.Background(), 12, 9)
		require.ErrorIs(t, err, serrors.ErrPermanent)
		require.NotErrorIs(t, err, serrors.ErrAlreadyTagged)
	})

	t.Run("rate limited", func(t *testing.T) {
		c := newTestClient(func(*http.Request) (*http.Response, error) {
			return respond(http.StatusTooManyRequests, `already too many`), nil
		})

		err := c.AddTag(context.Background(), 12, 9)
		require.ErrorIs(t, err, serrors.ErrRateLimited)
		require.NotErrorIs(t, err, serrors.ErrAlreadyTagged)
	})
}

func TestClient_SubmitOrder(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "/orders/createorder", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "k1", payload["orderKey"])

		return respond(http.StatusOK, orderJSON), nil
	})

	o, err := c.SubmitOrder(context.Background(), map[string]any{"orderKey": "k1"})
	require.NoError(t, err)
	require.Equal(t, int64(123), o.ID)
}
