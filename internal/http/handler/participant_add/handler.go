package participantadd

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	ExchangeID string `json:"exchange_id"`
	Name       string `json:"name"`
}

// Handler реализует POST /exchange/participant/add.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler добавления участника.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/participant/add на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Post("/participant/add", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if req.ExchangeID == "" || strings.TrimSpace(req.Name) == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id и name обязательны")
	}
	participant, err := h.useCase.AddParticipant(r.Context(), req.ExchangeID, req.Name)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, map[string]any{"participant": participant})
	return nil
}
