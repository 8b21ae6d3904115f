package drawpreview

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	Participants []common.ParticipantDTO `json:"participants"`
	MaxAttempts  int                     `json:"max_attempts"`
}

// Handler реализует POST /draw/preview: жеребьёвка без сохранения.
type Handler struct {
	useCase UseCase
}

// New создаёт новый handler жеребьёвки без сохранения.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /draw/preview.
func (h *Handler) Register(router chi.Router) {
	router.Post("/preview", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	result, err := h.useCase.PreviewDraw(r.Context(), common.ToDomainParticipants(req.Participants), req.MaxAttempts)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, result)
	return nil
}
