package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/logging"
)

type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// RespondJSON отправляет JSON-ответ с указанным статус-кодом.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// BadRequest отправляет JSON-ответ со статусом 400.
func BadRequest(w http.ResponseWriter, code, message string) {
	RespondJSON(w, http.StatusBadRequest, APIError{
		Error: APIErrorBody{Code: code, Message: message},
	})
}

// HTTPError описывает контролируемую HTTP-ошибку.
type HTTPError struct {
	status  int
	code    string
	message string
}

func (e *HTTPError) Error() string {
	return e.message
}

// NewHTTPError создаёт новую HTTP-ошибку.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		status:  status,
		code:    code,
		message: message,
	}
}

// NewBadRequestError создаёт 400 ошибку.
func NewBadRequestError(code, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

// WithErrorHandling оборачивает обработчик, централизуя выдачу ошибок.
func WithErrorHandling(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				RespondJSON(w, httpErr.status, APIError{
					Error: APIErrorBody{Code: httpErr.code, Message: httpErr.message},
				})
				return
			}
			WriteDomainError(w, r, err)
		}
	}
}

// WriteDomainError преобразует доменные ошибки в HTTP-ответы.
// Контекст логирования восстанавливается из ошибки, если сервис его туда положил.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := logging.ErrorCtx(r.Context(), err)

	var infeasible *domain.InfeasibleError
	switch {
	case errors.Is(err, domain.ErrValidation):
		slog.DebugContext(ctx, "validation failed", "error", err)
		RespondJSON(w, http.StatusBadRequest, APIError{Error: APIErrorBody{Code: "VALIDATION_ERROR", Message: err.Error()}})
	case errors.Is(err, domain.ErrExchangeNotFound),
		errors.Is(err, domain.ErrParticipantNotFound),
		errors.Is(err, domain.ErrGroupNotFound):
		slog.DebugContext(ctx, "resource not found", "error", err)
		RespondJSON(w, http.StatusNotFound, APIError{Error: APIErrorBody{Code: "NOT_FOUND", Message: err.Error()}})
	case errors.Is(err, domain.ErrDuplicateName):
		slog.DebugContext(ctx, "duplicate participant name", "error", err)
		RespondJSON(w, http.StatusConflict, APIError{Error: APIErrorBody{Code: "DUPLICATE_NAME", Message: err.Error()}})
	case errors.Is(err, domain.ErrNotDrawn):
		slog.DebugContext(ctx, "exchange not drawn", "error", err)
		RespondJSON(w, http.StatusConflict, APIError{Error: APIErrorBody{Code: "NOT_DRAWN", Message: err.Error()}})
	case errors.As(err, &infeasible):
		slog.DebugContext(ctx, "exchange infeasible", "reason", infeasible.Reason)
		RespondJSON(w, http.StatusUnprocessableEntity, APIError{Error: APIErrorBody{
			Code:    "INFEASIBLE",
			Message: err.Error(),
			Reason:  string(infeasible.Reason),
		}})
	case errors.Is(err, domain.ErrGenerationExhausted):
		slog.WarnContext(ctx, "draw exhausted", "error", err)
		RespondJSON(w, http.StatusConflict, APIError{Error: APIErrorBody{Code: "GENERATION_EXHAUSTED", Message: err.Error()}})
	default:
		slog.ErrorContext(ctx, "unhandled domain error", "error", err)
		RespondJSON(w, http.StatusInternalServerError, APIError{Error: APIErrorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}})
	}
}
