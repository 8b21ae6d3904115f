package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestGetEndpointPrefersRoutePattern(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/exchange/get"}

	req := httptest.NewRequest(http.MethodGet, "/exchange/get?exchange_id=1", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	require.Equal(t, "/exchange/get", getEndpoint(req))

	require.Equal(t, "/custom", getEndpoint(httptest.NewRequest(http.MethodGet, "/custom", nil)))
	require.Equal(t, "/", getEndpoint(nil))
}

func hasEndpointSeries(t *testing.T, endpoint string) bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "gift_exchange_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "endpoint" && lp.GetValue() == endpoint {
					return true
				}
			}
		}
	}
	return false
}

func TestMetricsMiddlewareSkipsServicePaths(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	MetricsMiddleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.True(t, called)
	require.False(t, hasEndpointSeries(t, "/health"))
}
