package groupadd

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	ExchangeID string `json:"exchange_id"`
	Label      string `json:"label"`
}

// Handler реализует POST /exchange/group/add.
type Handler struct {
	useCase UseCase
}

// New создаёт handler создания группы исключений.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/group/add на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Post("/group/add", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if req.ExchangeID == "" || strings.TrimSpace(req.Label) == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id и label обязательны")
	}
	group, err := h.useCase.CreateGroup(r.Context(), req.ExchangeID, req.Label)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, map[string]any{"group": group})
	return nil
}
