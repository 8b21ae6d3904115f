package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gift-exchange-service/internal/config"
)

func TestNewHTTPServerUsesConfig(t *testing.T) {
	srv := newHTTPServer(config.HTTPConfig{
		Port:         "9090",
		ReadTimeout:  time.Second,
		WriteTimeout: 2 * time.Second,
		IdleTimeout:  3 * time.Second,
	}, http.NotFoundHandler())

	require.Equal(t, ":9090", srv.Addr)
	require.Equal(t, time.Second, srv.ReadTimeout)
	require.Equal(t, 2*time.Second, srv.WriteTimeout)
	require.Equal(t, 3*time.Second, srv.IdleTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadSwaggerSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o600))

	require.Equal(t, []byte("openapi: 3.0.3\n"), loadSwaggerSpec(context.Background(), path))
	require.Nil(t, loadSwaggerSpec(context.Background(), filepath.Join(t.TempDir(), "missing.yml")))
}

func TestConnectWithRetryRejectsBadURL(t *testing.T) {
	_, err := connectWithRetry(context.Background(), config.Config{
		Database: config.DatabaseConfig{URL: "::not a url::"},
	})
	require.Error(t, err)
}
