// Package v1handler implements the v1 HTTP API: reconciliation scans, bulk
// tagging and customs declarations, behind bearer authentication.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ordersync/internal/reconcile"
	"ordersync/pkg/customs"
	"ordersync/pkg/logger"
	"ordersync/pkg/serrors"

	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies. Batch requests carry at most a few
// thousand order IDs.
const maxBodyBytes = 1 << 20

// Deps are the services behind the v1 routes.
type Deps struct {
	Reconciler reconcile.Reconciler
	Customs    customs.Declarer
}

// Handler serves the v1 API.
type Handler struct {
	deps Deps
}

// New returns a Handler using deps.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the v1 routes on mux.
func (h Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/reconcile/scan", h.Scan)
	mux.HandleFunc("POST /v1/reconcile/tags", h.Tag)
	mux.HandleFunc("POST /v1/customs/preview", h.PreviewCustoms)
	mux.HandleFunc("POST /v1/customs/batch", h.DeclareBatch)
	mux.HandleFunc("POST /v1/orders/{id}/customs", h.DeclareCustoms)
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse pairs an ErrorBody with its HTTP status.
type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

type errorMapping struct {
	status  int
	message string
}

// errorMappings translate semantic kinds to statuses and default messages.
// Upstream failures surface as 502 so callers can tell them from our bugs.
var errorMappings = map[serrors.Kind]errorMapping{ //nolint: gochecknoglobals
	serrors.ErrNotFound:      {http.StatusNotFound, "resource not found"},
	serrors.ErrBadRequest:    {http.StatusBadRequest, "bad request"},
	serrors.ErrUnauthorized:  {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrRateLimited:   {http.StatusTooManyRequests, "upstream rate limit exceeded"},
	serrors.ErrAlreadyTagged: {http.StatusConflict, "tag already applied"},
	serrors.ErrMalformed:     {http.StatusBadGateway, "malformed upstream response"},
	serrors.ErrPermanent:     {http.StatusBadGateway, "upstream request failed"},
	serrors.ErrInternal:      {http.StatusInternalServerError, "internal error"},
}

// NewError converts err into an ErrorResponse. Errors without a semantic
// kind are internal and their text is not exposed.
func (h Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)
	mapping, ok := errorMappings[kind]
	if !ok {
		kind = serrors.ErrInternal
		mapping = errorMappings[serrors.ErrInternal]
	}

	message := mapping.message
	var se *serrors.Error
	if kind != serrors.ErrInternal && errors.As(err, &se) && se.Message() != "" {
		message = se.Message()
	}

	if mapping.status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	return &ErrorResponse{
		StatusCode: mapping.status,
		Response:   ErrorBody{Code: kind.Error(), Message: message},
	}
}

func (h Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body: %s", err.Error())
}

func requireOrderIDs(ids []int64) error {
	if len(ids) == 0 {
		return serrors.With(serrors.ErrBadRequest, "orderIds must not be empty")
	}
	for _, id := range ids {
		if id <= 0 {
			return serrors.With(serrors.ErrBadRequest, "invalid order id %d", id)
		}
	}

	return nil
}
