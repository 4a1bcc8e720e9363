package v1handler

import (
	"net/http"

	"ordersync/internal/reconcile"
	"ordersync/pkg/domain"
)

// ScanRequest is the body of POST /v1/reconcile/scan.
type ScanRequest struct {
	reconcile.ScanRequest

	// Tag applies the reconciliation tag to every order with changes once
	// the scan is done.
	Tag bool `json:"tag"`
}

// ScanResponse is the result of a scan, with the tagging summary when Tag was set.
type ScanResponse struct {
	*domain.ScanSummary

	Tagging *domain.BulkTagResult `json:"tagging,omitempty"`
}

// Scan runs a reconciliation scan.
func (h Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	summary, err := h.deps.Reconciler.Scan(r.Context(), req.ScanRequest)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	res := ScanResponse{ScanSummary: summary}
	if ids := summary.ChangedOrderIDs(); req.Tag && len(ids) > 0 {
		if summary.TagID != 0 {
			tagging := h.deps.Reconciler.BulkTag(r.Context(), ids, summary.TagID)
			res.Tagging = &tagging
		} else {
			tagging, err := h.deps.Reconciler.TagByName(r.Context(), ids, "")
			if err != nil {
				h.writeError(w, r, err)

				return
			}
			res.Tagging = tagging
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, res)
}

// TagRequest is the body of POST /v1/reconcile/tags. TagID wins over TagName;
// with neither the configured reconciliation tag is used.
type TagRequest struct {
	OrderIDs []int64 `json:"orderIds"`
	TagID    int64   `json:"tagId"`
	TagName  string  `json:"tagName"`
}

// Tag applies a tag to the given orders, one at a time.
func (h Handler) Tag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if err := requireOrderIDs(req.OrderIDs); err != nil {
		h.writeError(w, r, err)

		return
	}

	if req.TagID > 0 {
		res := h.deps.Reconciler.BulkTag(r.Context(), req.OrderIDs, req.TagID)
		writeJSON(r.Context(), w, http.StatusOK, res)

		return
	}

	res, err := h.deps.Reconciler.TagByName(r.Context(), req.OrderIDs, req.TagName)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	writeJSON(r.Context(), w, http.StatusOK, res)
}
