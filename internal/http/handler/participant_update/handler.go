package participantupdate

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
	"gift-exchange-service/internal/service"
)

// request допускает частичное обновление: отсутствующее поле не меняется,
// пустой group_id возвращает участника в одиночную группу.
type request struct {
	ExchangeID    string  `json:"exchange_id"`
	ParticipantID string  `json:"participant_id"`
	Name          *string `json:"name"`
	GroupID       *string `json:"group_id"`
}

// Handler реализует POST /exchange/participant/update.
type Handler struct {
	useCase UseCase
}

// New создаёт handler переименования и переноса участника.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/participant/update на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Post("/participant/update", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if req.ExchangeID == "" || req.ParticipantID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id и participant_id обязательны")
	}
	if req.Name == nil && req.GroupID == nil {
		return common.NewBadRequestError("VALIDATION_ERROR", "нужно передать name или group_id")
	}
	participant, err := h.useCase.UpdateParticipant(r.Context(), req.ExchangeID, req.ParticipantID, service.ParticipantUpdate{
		Name:    req.Name,
		GroupID: req.GroupID,
	})
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]any{"participant": participant})
	return nil
}
