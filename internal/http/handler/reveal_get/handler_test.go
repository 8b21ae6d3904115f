package revealget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/service"
)

type stubUseCase struct {
	count int
}

func (s *stubUseCase) RevealSequence(ctx context.Context, exchangeID, giverID string, count int) (service.RevealResult, error) {
	s.count = count
	return service.RevealResult{
		GiverID:  giverID,
		Sequence: []string{"Ann", "Cid", "Ben"},
		Receiver: domain.Participant{ID: "b", Name: "Ben"},
	}, nil
}

func TestHandler_ParsesCount(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{}
	handler := New(useCase)
	router := chi.NewRouter()
	handler.Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reveal?exchange_id=ex-1&giver_id=a&count=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, useCase.count)
	require.Contains(t, rec.Body.String(), `"sequence":["Ann","Cid","Ben"]`)
}

func TestHandler_DefaultCountIsZero(t *testing.T) {
	t.Parallel()

	useCase := &stubUseCase{count: -1}
	handler := New(useCase)
	router := chi.NewRouter()
	handler.Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reveal?exchange_id=ex-1&giver_id=a", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, useCase.count)
}

func TestHandler_RejectsBadCount(t *testing.T) {
	t.Parallel()

	handler := New(&stubUseCase{})
	router := chi.NewRouter()
	handler.Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reveal?exchange_id=ex-1&giver_id=a&count=many", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
