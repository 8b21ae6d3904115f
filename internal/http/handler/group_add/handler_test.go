package groupadd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"gift-exchange-service/internal/domain"
)

type stubUseCase struct {
	label string
}

func (s *stubUseCase) CreateGroup(ctx context.Context, exchangeID, label string) (domain.Group, error) {
	s.label = label
	return domain.Group{ID: "g_1", Label: label}, nil
}

func TestHandler_CreatesGroup(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{}
	handler := New(useCase)
	router := chi.NewRouter()
	handler.Register(router)

	req := httptest.NewRequest(http.MethodPost, "/group/add", bytes.NewBufferString(`{"exchange_id":"ex-1","label":"Smiths"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Smiths", useCase.label)
	var resp struct {
		Group domain.Group `json:"group"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "g_1", resp.Group.ID)
}

func TestHandler_ValidatesRequest(t *testing.T) {
	t.Parallel()

	handler := New(&stubUseCase{})
	router := chi.NewRouter()
	handler.Register(router)

	req := httptest.NewRequest(http.MethodPost, "/group/add", bytes.NewBufferString(`{"exchange_id":"ex-1","label":" "}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
