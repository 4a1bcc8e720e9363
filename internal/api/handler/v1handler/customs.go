package v1handler

import (
	"net/http"
	"strconv"

	"ordersync/pkg/customs"
	"ordersync/pkg/domain"
	"ordersync/pkg/serrors"
)

// PreviewRequest is the body of POST /v1/customs/preview. Either an order ID
// or a list of raw items is required.
type PreviewRequest struct {
	OrderID int64             `json:"orderId"`
	Items   []customs.RawItem `json:"items"`
}

// DeclarationResponse lists the sanitized declaration lines of an order.
type DeclarationResponse struct {
	OrderID int64                    `json:"orderId,omitempty"`
	Lines   []domain.DeclarationLine `json:"lines"`
}

// PreviewCustoms returns declaration lines without submitting anything.
func (h Handler) PreviewCustoms(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	switch {
	case req.OrderID > 0:
		lines, err := h.deps.Customs.Preview(r.Context(), req.OrderID)
		if err != nil {
			h.writeError(w, r, err)

			return
		}
		writeJSON(r.Context(), w, http.StatusOK, DeclarationResponse{OrderID: req.OrderID, Lines: lines})
	case len(req.Items) > 0:
		writeJSON(r.Context(), w, http.StatusOK, DeclarationResponse{Lines: h.deps.Customs.Lines(req.Items)})
	default:
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "orderId or items is required"))
	}
}

// DeclareCustoms builds and submits the declaration of the order in the path.
func (h Handler) DeclareCustoms(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "invalid order id %q", r.PathValue("id")))

		return
	}

	lines, err := h.deps.Customs.Declare(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	writeJSON(r.Context(), w, http.StatusOK, DeclarationResponse{OrderID: id, Lines: lines})
}

// BatchRequest is the body of POST /v1/customs/batch.
type BatchRequest struct {
	OrderIDs []int64 `json:"orderIds"`
}

// DeclareBatch declares several orders in turn. Per-order failures are part
// of the result, not of the status code.
func (h Handler) DeclareBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if err := requireOrderIDs(req.OrderIDs); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Customs.DeclareBatch(r.Context(), req.OrderIDs))
}
