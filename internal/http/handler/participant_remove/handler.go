package participantremove

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	ExchangeID    string `json:"exchange_id"`
	ParticipantID string `json:"participant_id"`
}

// Handler реализует POST /exchange/participant/remove.
type Handler struct {
	useCase UseCase
}

// New создаёт handler удаления участника.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/participant/remove.
func (h *Handler) Register(router chi.Router) {
	router.Post("/participant/remove", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if req.ExchangeID == "" || req.ParticipantID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id и participant_id обязательны")
	}
	if err := h.useCase.RemoveParticipant(r.Context(), req.ExchangeID, req.ParticipantID); err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]any{
		"participant_id": req.ParticipantID,
		"removed":        true,
	})
	return nil
}
