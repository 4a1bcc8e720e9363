// Package shipstation provides a client for the ShipStation v1 REST API: the
// fulfillment side of reconciliation and the target of customs updates.
package shipstation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ordersync/pkg/domain"
	"ordersync/pkg/logger"
	"ordersync/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://ssapi.shipstation.com"

// RateLimitStatus describes the request window reported by the API.
type RateLimitStatus struct {
	Limit     int       // Limit is the total number of allowed requests in the current window.
	Remaining int       // Remaining indicates how many requests are left in the current window.
	ResetAt   time.Time // ResetAt is when the window resets.
}

// ParseRateLimit extracts the X-Rate-Limit-* headers. The reset header counts
// seconds from now. Missing headers yield zero values.
func ParseRateLimit(h http.Header, now time.Time) RateLimitStatus {
	atoi := func(s string) int {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}

		return 0
	}

	return RateLimitStatus{
		Limit:     atoi(h.Get("X-Rate-Limit-Limit")),
		Remaining: atoi(h.Get("X-Rate-Limit-Remaining")),
		ResetAt:   now.Add(time.Duration(atoi(h.Get("X-Rate-Limit-Reset"))) * time.Second),
	}
}

// Options configure a Client.
type Options struct {
	BaseURL   string
	APIKey    string
	APISecret string
}

// Client talks to the ShipStation API using basic authentication. It is safe
// for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	secret     string
}

// New constructs a Client that uses the provided http.Client.
func New(httpClient *http.Client, opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		key:        opts.APIKey,
		secret:     opts.APISecret,
	}
}

// createDateLayout is the timestamp format accepted by the order filters.
const createDateLayout = "2006-01-02 15:04:05"

// SearchOrders lists one page of orders matching filter. Elements of the
// result that are not order objects are skipped.
func (c *Client) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("orderStatus", filter.Status)
	}
	if !filter.CreatedSince.IsZero() {
		q.Set("createDateStart", filter.CreatedSince.UTC().Format(createDateLayout))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(filter.PageSize))
	}
	if filter.SortKey != "" {
		q.Set("sortBy", filter.SortKey)
	}
	if filter.SortDirection != "" {
		q.Set("sortDir", filter.SortDirection)
	}

	b, err := c.do(ctx, http.MethodGet, "/orders", q, nil)
	if err != nil {
		return nil, fmt.Errorf("could not search orders: %w", err)
	}

	raws, err := list(b)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformed, err, "could not decode orders")
	}

	orders := make([]domain.Order, 0, len(raws))
	for _, raw := range raws {
		o, err := decodeOrder(raw)
		if err != nil {
			logger.Warn(ctx, "skipping malformed order", zap.Error(err))

			continue
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetOrder fetches a single order. It fails with serrors.ErrNotFound when the
// order does not exist.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	b, err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(orderID, 10), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not get order: %w", err)
	}

	o, err := decodeOrder(b)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformed, err, "could not decode order %d", orderID)
	}

	return &o, nil
}

// TagIDByName returns the ID of the account tag called name, compared case
// insensitively. It fails with serrors.ErrNotFound when no tag matches.
func (c *Client) TagIDByName(ctx context.Context, name string) (int64, error) {
	b, err := c.do(ctx, http.MethodGet, "/accounts/listtags", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("could not list tags: %w", err)
	}

	raws, err := list(b)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrMalformed, err, "could not decode tags")
	}

	want := strings.TrimSpace(name)
	for _, raw := range raws {
		t, err := decodeTag(raw)
		if err != nil {
			continue
		}
		if t.ID > 0 && strings.EqualFold(strings.TrimSpace(t.Name), want) {
			return t.ID, nil
		}
	}

	return 0, serrors.With(serrors.ErrNotFound, "tag %q not found", name)
}

// AddTag applies tagID to the order. A rejection because the tag is present
// already fails with serrors.ErrAlreadyTagged.
func (c *Client) AddTag(ctx context.Context, orderID int64, tagID int64) error {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("orderId")
	e.Int64(orderID)
	e.FieldStart("tagId")
	e.Int64(tagID)
	e.ObjEnd()

	b, err := c.do(ctx, http.MethodPost, "/orders/addtag", nil, e.Bytes())
	if err != nil {
		if !errors.Is(err, serrors.ErrRateLimited) && isAlready(err.Error()) {
			return serrors.Wrap(serrors.ErrAlreadyTagged, err, "order %d already has tag %d", orderID, tagID)
		}

		return fmt.Errorf("could not add tag: %w", err)
	}

	res, err := decodeOperationResult(b)
	if err != nil {
		return serrors.Wrap(serrors.ErrMalformed, err, "could not decode addtag response")
	}
	if !res.Success {
		if isAlready(res.Message) {
			return serrors.With(serrors.ErrAlreadyTagged, "%s", res.Message)
		}

		return serrors.With(serrors.ErrPermanent, "add tag rejected: %s", res.Message)
	}

	return nil
}

// SubmitOrder sends payload to the create-or-update endpoint, which replaces
// the whole order, and returns the stored order.
func (c *Client) SubmitOrder(ctx context.Context, payload map[string]any) (*domain.Order, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal order: %w", err)
	}

	b, err := c.do(ctx, http.MethodPost, "/orders/createorder", nil, body)
	if err != nil {
		return nil, fmt.Errorf("could not submit order: %w", err)
	}

	o, err := decodeOrder(b)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformed, err, "could not decode submitted order")
	}

	return &o, nil
}

func isAlready(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "already")
}

// do performs one request and maps non-2xx statuses to error kinds: 429 to
// ErrRateLimited, 404 to ErrNotFound and everything else to ErrPermanent.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.SetBasicAuth(c.key, c.secret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if logger.IsDebug(ctx) {
		rl := ParseRateLimit(resp.Header, time.Now())
		logger.Debug(ctx, "shipstation call",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Int("rateLimitRemaining", rl.Remaining),
		)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	msg := strings.TrimSpace(string(b))
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited: %s", msg)
	case resp.StatusCode == http.StatusNotFound:
		return nil, serrors.With(serrors.ErrNotFound, "%s %s not found", method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, serrors.With(serrors.ErrPermanent, "%s %s failed with %d: %s", method, path, resp.StatusCode, msg)
	}

	return b, nil
}
