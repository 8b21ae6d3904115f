package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"gift-exchange-service/internal/http/handler/common"
)

// PanicMiddleware превращает панику обработчика в ответ 500 с кодом UNKNOWN.
// http.ErrAbortHandler пробрасывается дальше: net/http сам обрывает соединение.
func PanicMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint // сравнение значения из recover
				panic(rvr)
			}
			slog.ErrorContext(
				r.Context(),
				"panic recovered",
				"request_id", chimw.GetReqID(r.Context()),
				"method", r.Method,
				"url", r.URL.Path,
				"time", time.Since(start),
				"error", rvr,
				"stack_trace", string(debug.Stack()),
			)
			common.RespondJSON(w, http.StatusInternalServerError, common.APIError{
				Error: common.APIErrorBody{Code: "UNKNOWN", Message: "internal server error"},
			})
		}()
		next.ServeHTTP(w, r)
	})
}
