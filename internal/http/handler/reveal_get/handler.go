package revealget

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gift-exchange-service/internal/http/handler/common"
)

// Handler реализует GET /exchange/reveal: лента имён для анимации, заканчивающаяся получателем.
type Handler struct {
	useCase UseCase
}

// New создаёт handler ленты имён для анимации.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт GET /exchange/reveal на роутер.
func (h *Handler) Register(router chi.Router) {
	router.Get("/reveal", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	exchangeID := query.Get("exchange_id")
	giverID := query.Get("giver_id")
	if exchangeID == "" || giverID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "exchange_id и giver_id обязательны")
	}
	var count int
	if raw := query.Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return common.NewBadRequestError("VALIDATION_ERROR", "count должен быть числом")
		}
		count = parsed
	}
	result, err := h.useCase.RevealSequence(r.Context(), exchangeID, giverID, count)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, result)
	return nil
}
