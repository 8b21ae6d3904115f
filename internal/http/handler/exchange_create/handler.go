package exchangecreate

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

type request struct {
	Title string `json:"title"`
}

// Handler реализует POST /exchange/create.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler создания обмена.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /exchange/create на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Post("/create", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if strings.TrimSpace(req.Title) == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "title обязателен")
	}
	exchange, err := h.useCase.CreateExchange(r.Context(), req.Title)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, map[string]any{"exchange": exchange})
	return nil
}
