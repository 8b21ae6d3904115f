package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gift-exchange-service/internal/metrics"
)

// Служебные пути, которые опрашиваются постоянно и не отражают нагрузку на жеребьёвку.
var skipMetrics = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
}

// MetricsMiddleware пишет HTTP-метрики по шаблону маршрута chi.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := skipMetrics[r.URL.Path]; skip {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		// Шаблон маршрута известен только после прохода через роутер.
		metrics.ObserveHTTPRequest(r.Method, getEndpoint(r), status, time.Since(start), r.ContentLength)
	})
}

// getEndpoint возвращает шаблон маршрута, чтобы query-параметры не плодили метки.
func getEndpoint(r *http.Request) string {
	if r == nil {
		return "/"
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	if r.URL.Path != "" {
		return r.URL.Path
	}
	return "/"
}
