package exchangedraw

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	ExchangeID string `json:"exchange_id"`
}

// Handler реализует POST /exchange/draw.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler жеребьёвки.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/draw на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Post("/draw", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if req.ExchangeID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id обязателен")
	}
	exchange, err := h.useCase.Draw(r.Context(), req.ExchangeID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]any{"exchange": exchange})
	return nil
}
