package exchangecheck

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

// Handler реализует GET /exchange/check: сводка по составу и вердикт предварительной проверки.
type Handler struct {
	useCase UseCase
}

// New создаёт handler сводки по обмену.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт GET /exchange/check на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Get("/check", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	exchangeID := r.URL.Query().Get("exchange_id")
	if exchangeID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id обязателен")
	}
	summary, err := h.useCase.Summary(r.Context(), exchangeID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, summary)
	return nil
}
