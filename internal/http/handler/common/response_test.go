package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/logging"
)

func TestRespondJSONWritesBodyAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusAccepted, map[string]string{"ok": "true"})

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body))
	require.Equal(t, "true", body["ok"])
}

func TestWithErrorHandlingReturnsHTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := WithErrorHandling(func(http.ResponseWriter, *http.Request) error {
		return NewHTTPError(http.StatusTeapot, "CUSTOM", "boom")
	})
	handler(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "CUSTOM", apiErr.Error.Code)
}

func TestWriteDomainErrorMapping(t *testing.T) {
	wrapped := logging.WrapError(logging.WithLogExchangeID(context.Background(), "ex-1"), domain.ErrDuplicateName)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		reason string
	}{
		{"validation", fmt.Errorf("%w: title cannot be empty", domain.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR", ""},
		{"exchange not found", domain.ErrExchangeNotFound, http.StatusNotFound, "NOT_FOUND", ""},
		{"group not found", domain.ErrGroupNotFound, http.StatusNotFound, "NOT_FOUND", ""},
		{"duplicate wrapped with log context", wrapped, http.StatusConflict, "DUPLICATE_NAME", ""},
		{"not drawn", domain.ErrNotDrawn, http.StatusConflict, "NOT_DRAWN", ""},
		{"infeasible", domain.NewInfeasibleError(domain.ReasonSingleGroup), http.StatusUnprocessableEntity, "INFEASIBLE", "single_group"},
		{"exhausted", domain.ErrGenerationExhausted, http.StatusConflict, "GENERATION_EXHAUSTED", ""},
		{"unknown", errors.New("unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			WithErrorHandling(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, req)

			require.Equal(t, tt.status, rec.Code)
			var apiErr APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			require.Equal(t, tt.code, apiErr.Error.Code)
			require.Equal(t, tt.reason, apiErr.Error.Reason)
		})
	}
}

func TestWriteDomainErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteDomainError(rec, req, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
}
