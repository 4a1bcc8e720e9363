package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ordersync/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestPprof(t *testing.T) {
	h := controller.Pprof("/debug/pprof")

	for path, want := range map[string]int{
		"/debug/pprof/":          http.StatusOK,
		"/debug/pprof/cmdline":   http.StatusOK,
		"/debug/pprof/goroutine": http.StatusOK,
		"/debug/pprof/nope":      http.StatusNotFound,
	} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://pprof.local"+path, nil))
			require.Equal(t, want, rec.Code)
		})
	}
}
