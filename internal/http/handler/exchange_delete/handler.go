package exchangedelete

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	ExchangeID string `json:"exchange_id"`
}

// Handler реализует POST /exchange/delete.
type Handler struct {
	useCase UseCase
}

// New создаёт handler удаления обмена.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/delete.
func (h *Handler) Register(router chi.Router) {
	router.Post("/delete", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if req.ExchangeID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id обязателен")
	}
	if err := h.useCase.DeleteExchange(r.Context(), req.ExchangeID); err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]any{
		"exchange_id": req.ExchangeID,
		"deleted":     true,
	})
	return nil
}
