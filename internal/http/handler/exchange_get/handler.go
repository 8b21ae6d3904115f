package exchangeget

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

// Handler реализует HTTP-эндпоинт получения обмена.
type Handler struct {
	useCase UseCase
}

// New создаёт handler чтения обмена.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт GET /exchange/get на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Get("/get", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	exchangeID := r.URL.Query().Get("exchange_id")
	if exchangeID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id обязателен")
	}
	exchange, err := h.useCase.GetExchange(r.Context(), exchangeID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, exchange)
	return nil
}
