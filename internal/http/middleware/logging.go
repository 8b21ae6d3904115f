package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"gift-exchange-service/internal/logging"
)

// LoggerMiddleware логирует начало и конец обработки запроса.
// Request ID берётся от chimw.RequestID, если он есть, иначе генерируется.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := chimw.GetReqID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = logging.WithLogRequestID(ctx, requestID)
		ctx = logging.WithLogRequestPath(ctx, r.URL.Path)
		ctx = logging.WithLogRequestMethod(ctx, r.Method)

		slog.DebugContext(ctx, "request started")
		start := time.Now()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ctx = logging.WithLogRequestStatus(ctx, status)
		ctx = logging.WithLogRequestDuration(ctx, time.Since(start).String())

		switch {
		case status >= http.StatusInternalServerError:
			slog.ErrorContext(ctx, "request finished")
		case status >= http.StatusBadRequest:
			slog.WarnContext(ctx, "request finished")
		default:
			slog.InfoContext(ctx, "request finished")
		}
	})
}
