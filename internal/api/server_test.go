package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"

	"ordersync/internal/api"
	"ordersync/internal/api/handler/v1handler"
	"ordersync/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func publicKeyPEM(t *testing.T) string {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func newTestServer(t *testing.T, env string) http.Handler {
	t.Helper()
	srv, err := api.NewServer(context.Background(), api.Deps{Gatherer: prometheus.NewRegistry()}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: publicKeyPEM(t)},
		Environment:       env,
		MetricsPath:       "/metrics",
		AllowedOrigins:    []string{"*"},
	})
	require.NoError(t, err)

	return srv.Handler
}

func get(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func TestNewServer_Routes(t *testing.T) {
	h := newTestServer(t, logger.DevelopmentEnvironment)

	rec := get(h, http.MethodGet, "/specs/v1.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "/v1/reconcile/scan")

	require.Equal(t, http.StatusOK, get(h, http.MethodGet, "/metrics").Code)
	require.Equal(t, http.StatusOK, get(h, http.MethodGet, "/debug/pprof/").Code)

	rec = get(h, http.MethodPost, "/v1/reconcile/scan")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestNewServer_NoPprofInProduction(t *testing.T) {
	h := newTestServer(t, logger.ProductionEnvironment)

	require.Equal(t, http.StatusNotFound, get(h, http.MethodGet, "/debug/pprof/").Code)
}

func TestNewServer_InvalidKey(t *testing.T) {
	_, err := api.NewServer(context.Background(), api.Deps{}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: "nope"},
	})
	require.Error(t, err)
}
