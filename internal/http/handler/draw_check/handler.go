package drawcheck

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	Participants []common.ParticipantDTO `json:"participants"`
}

// Handler реализует POST /draw/check для произвольного списка без сохранения.
type Handler struct {
	useCase UseCase
}

// New создаёт handler предварительной проверки списка.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /draw/check на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Post("/check", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	verdict, err := h.useCase.PreviewCheck(r.Context(), common.ToDomainParticipants(req.Participants))
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, verdict)
	return nil
}
