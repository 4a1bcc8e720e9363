package v1handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ordersync/internal/api/handler/v1handler"
	"ordersync/internal/reconcile"
	mockreconcile "ordersync/internal/reconcile/mock"
	"ordersync/pkg/customs"
	mockcustoms "ordersync/pkg/customs/mock"
	"ordersync/pkg/domain"
	"ordersync/pkg/serrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routesFixture struct {
	reconciler *mockreconcile.MockReconciler
	declarer   *mockcustoms.MockDeclarer
	mux        *http.ServeMux
}

func newRoutesFixture(t *testing.T) *routesFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &routesFixture{
		reconciler: mockreconcile.NewMockReconciler(ctrl),
		declarer:   mockcustoms.NewMockDeclarer(ctrl),
		mux:        http.NewServeMux(),
	}
	v1handler.New(v1handler.Deps{Reconciler: f.reconciler, Customs: f.declarer}).Register(f.mux)

	return f
}

func (f *routesFixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))

	return v
}

func changedSummary() *domain.ScanSummary {
	return &domain.ScanSummary{
		Outcomes: []domain.ScanOutcome{
			{OrderID: 1, OrderNumber: "1001", Status: domain.ScanStatusHasChanges, ChangeCount: 1},
			{OrderID: 2, OrderNumber: "1002", Status: domain.ScanStatusNoChanges},
			{OrderID: 3, OrderNumber: "1003", Status: domain.ScanStatusHasChanges, ChangeCount: 2},
		},
		Scanned:        3,
		WithChanges:    2,
		WithoutChanges: 1,
	}
}

func TestScan(t *testing.T) {
	t.Run("without tagging", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.reconciler.EXPECT().
			Scan(gomock.Any(), reconcile.ScanRequest{Status: "on_hold", MaxOrders: 20}).
			Return(changedSummary(), nil)

		rec := f.post(t, "/v1/reconcile/scan", `{"status":"on_hold","maxOrders":20}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decodeBody[v1handler.ScanResponse](t, rec)
		require.Equal(t, 3, res.Scanned)
		require.Equal(t, 2, res.WithChanges)
		require.Nil(t, res.Tagging)
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.reconciler.EXPECT().Scan(gomock.Any(), reconcile.ScanRequest{}).Return(&domain.ScanSummary{}, nil)

		rec := f.post(t, "/v1/reconcile/scan", ``)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("tags changed orders with the resolved tag", func(t *testing.T) {
		f := newRoutesFixture(t)
		summary := changedSummary()
		summary.TagID = 9
		f.reconciler.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(summary, nil)
		f.reconciler.EXPECT().
			BulkTag(gomock.Any(), []int64{1, 3}, int64(9)).
			Return(domain.BulkTagResult{Success: 1, Skipped: 1, Errors: []domain.TagError{}})

		rec := f.post(t, "/v1/reconcile/scan", `{"tag":true}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decodeBody[v1handler.ScanResponse](t, rec)
		require.NotNil(t, res.Tagging)
		require.Equal(t, 1, res.Tagging.Success)
		require.Equal(t, 1, res.Tagging.Skipped)
	})

	t.Run("unresolved tag fails the request", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.reconciler.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(changedSummary(), nil)
		f.reconciler.EXPECT().
			TagByName(gomock.Any(), []int64{1, 3}, "").
			Return(nil, serrors.With(serrors.ErrNotFound, "tag %q not found", "Order Changed"))

		rec := f.post(t, "/v1/reconcile/scan", `{"tag":true}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.reconciler.EXPECT().Scan(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrPermanent, "could not search orders"))

		rec := f.post(t, "/v1/reconcile/scan", `{}`)
		require.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		f := newRoutesFixture(t)

		rec := f.post(t, "/v1/reconcile/scan", `{"maxOrders":"many"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, serrors.ErrBadRequest.Error(), decodeBody[v1handler.ErrorBody](t, rec).Code)
	})
}

func TestTag(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.reconciler.EXPECT().
			BulkTag(gomock.Any(), []int64{4, 5}, int64(7)).
			Return(domain.BulkTagResult{Success: 2, Errors: []domain.TagError{}})

		rec := f.post(t, "/v1/reconcile/tags", `{"orderIds":[4,5],"tagId":7}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 2, decodeBody[domain.BulkTagResult](t, rec).Success)
	})

	t.Run("by name", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.reconciler.EXPECT().
			TagByName(gomock.Any(), []int64{4}, "Rush").
			Return(&domain.BulkTagResult{Failed: 1, Errors: []domain.TagError{{OrderID: 4, Error: "shipped"}}}, nil)

		rec := f.post(t, "/v1/reconcile/tags", `{"orderIds":[4],"tagName":"Rush"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decodeBody[domain.BulkTagResult](t, rec)
		require.Equal(t, 1, res.Failed)
		require.Equal(t, int64(4), res.Errors[0].OrderID)
	})

	t.Run("requires order ids", func(t *testing.T) {
		f := newRoutesFixture(t)

		require.Equal(t, http.StatusBadRequest, f.post(t, "/v1/reconcile/tags", `{"tagId":7}`).Code)
		require.Equal(t, http.StatusBadRequest, f.post(t, "/v1/reconcile/tags", `{"orderIds":[0],"tagId":7}`).Code)
	})
}

func TestPreviewCustoms(t *testing.T) {
	line := domain.DeclarationLine{
		Description:     "Planner",
		Quantity:        2,
		Value:           decimal.RequireFromString("24.5"),
		TariffCode:      "4820.10.2010",
		CountryOfOrigin: "CN",
	}

	t.Run("order", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.declarer.EXPECT().Preview(gomock.Any(), int64(12)).Return([]domain.DeclarationLine{line}, nil)

		rec := f.post(t, "/v1/customs/preview", `{"orderId":12}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decodeBody[v1handler.DeclarationResponse](t, rec)
		require.Equal(t, int64(12), res.OrderID)
		require.Len(t, res.Lines, 1)
		require.Equal(t, "4820.10.2010", res.Lines[0].TariffCode)
		require.True(t, res.Lines[0].Value.Equal(line.Value))
	})

	t.Run("items", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.declarer.EXPECT().
			Lines(gomock.Len(1)).
			DoAndReturn(func(items []customs.RawItem) []domain.DeclarationLine {
				require.Equal(t, "PLNR-A5", items[0].SKU)

				return []domain.DeclarationLine{line}
			})

		rec := f.post(t, "/v1/customs/preview", `{"items":[{"sku":"PLNR-A5","name":"Planner","quantity":2,"unitPrice":"24.50"}]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decodeBody[v1handler.DeclarationResponse](t, rec).Lines, 1)
	})

	t.Run("neither", func(t *testing.T) {
		f := newRoutesFixture(t)

		require.Equal(t, http.StatusBadRequest, f.post(t, "/v1/customs/preview", `{}`).Code)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.declarer.EXPECT().Preview(gomock.Any(), int64(404)).
			Return(nil, serrors.With(serrors.ErrNotFound, "order 404 not found"))

		rec := f.post(t, "/v1/customs/preview", `{"orderId":404}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "order 404 not found", decodeBody[v1handler.ErrorBody](t, rec).Message)
	})
}

func TestDeclareCustoms(t *testing.T) {
	t.Run("path id", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.declarer.EXPECT().Declare(gomock.Any(), int64(77)).Return([]domain.DeclarationLine{}, nil)

		rec := f.post(t, "/v1/orders/77/customs", ``)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, int64(77), decodeBody[v1handler.DeclarationResponse](t, rec).OrderID)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newRoutesFixture(t)

		require.Equal(t, http.StatusBadRequest, f.post(t, "/v1/orders/abc/customs", ``).Code)
		require.Equal(t, http.StatusBadRequest, f.post(t, "/v1/orders/-1/customs", ``).Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newRoutesFixture(t)
		f.declarer.EXPECT().Declare(gomock.Any(), int64(5)).
			Return(nil, serrors.With(serrors.ErrRateLimited, "rate limited after 3 attempts"))

		require.Equal(t, http.StatusTooManyRequests, f.post(t, "/v1/orders/5/customs", ``).Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		f := newRoutesFixture(t)
		rec := httptest.NewRecorder()
		f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders/5/customs", nil))

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestDeclareBatch(t *testing.T) {
	f := newRoutesFixture(t)
	f.declarer.EXPECT().
		DeclareBatch(gomock.Any(), []int64{1, 2}).
		Return(customs.BatchResult{
			Submitted: 1,
			Failed:    1,
			Errors:    []customs.DeclareError{{OrderID: 2, Error: "order 2 not found"}},
		})

	rec := f.post(t, "/v1/customs/batch", `{"orderIds":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[customs.BatchResult](t, rec)
	require.Equal(t, 1, res.Submitted)
	require.Equal(t, 1, res.Failed)
	require.Equal(t, int64(2), res.Errors[0].OrderID)

	require.Equal(t, http.StatusBadRequest, f.post(t, "/v1/customs/batch", `{"orderIds":[]}`).Code)
}
