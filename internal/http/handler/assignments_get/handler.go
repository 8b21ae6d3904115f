package assignmentsget

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

// Handler реализует GET /exchange/assignments.
type Handler struct {
	useCase UseCase
}

// New создаёт handler чтения сохранённых назначений.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт GET /exchange/assignments на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Get("/assignments", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	exchangeID := r.URL.Query().Get("exchange_id")
	if exchangeID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id обязателен")
	}
	assignments, err := h.useCase.Assignments(r.Context(), exchangeID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]any{
		"exchange_id": exchangeID,
		"assignments": assignments,
	})
	return nil
}
