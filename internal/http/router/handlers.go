package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignmentsget "gift-exchange-service/internal/http/handler/assignments_get"
	"gift-exchange-service/internal/http/handler/common"
	drawcheck "gift-exchange-service/internal/http/handler/draw_check"
	drawpreview "gift-exchange-service/internal/http/handler/draw_preview"
	exchangecheck "gift-exchange-service/internal/http/handler/exchange_check"
	exchangecreate "gift-exchange-service/internal/http/handler/exchange_create"
	exchangedelete "gift-exchange-service/internal/http/handler/exchange_delete"
	exchangedraw "gift-exchange-service/internal/http/handler/exchange_draw"
	exchangeget "gift-exchange-service/internal/http/handler/exchange_get"
	groupadd "gift-exchange-service/internal/http/handler/group_add"
	participantadd "gift-exchange-service/internal/http/handler/participant_add"
	participantremove "gift-exchange-service/internal/http/handler/participant_remove"
	participantupdate "gift-exchange-service/internal/http/handler/participant_update"
	revealget "gift-exchange-service/internal/http/handler/reveal_get"
	"gift-exchange-service/internal/http/middleware"
	"gift-exchange-service/internal/http/swagger"
	"gift-exchange-service/internal/service"
)

// Handler агрегирует HTTP-эндпоинты.
type Handler struct {
	service     *service.Service
	swaggerSpec []byte
}

func New(service *service.Service, spec []byte) *Handler {
	return &Handler{service: service, swaggerSpec: spec}
}

// Router возвращает готовый chi.Router со всеми зарегистрированными маршрутами и middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	// Middleware применяются в порядке объявления
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.PanicMiddleware)
	r.Use(middleware.LoggerMiddleware)
	r.Use(middleware.MetricsMiddleware)
	swagger.RegisterRoutes(r, h.swaggerSpec)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.HealthCheck(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	h.registerExchangeRoutes(r)
	h.registerDrawRoutes(r)

	return r
}

func (h *Handler) registerExchangeRoutes(r chi.Router) {
	r.Route("/exchange", func(router chi.Router) {
		exchangecreate.New(h.service).Register(router)
		exchangeget.New(h.service).Register(router)
		exchangedelete.New(h.service).Register(router)
		exchangecheck.New(h.service).Register(router)
		exchangedraw.New(h.service).Register(router)
		assignmentsget.New(h.service).Register(router)
		revealget.New(h.service).Register(router)
		participantadd.New(h.service).Register(router)
		participantupdate.New(h.service).Register(router)
		participantremove.New(h.service).Register(router)
		groupadd.New(h.service).Register(router)
	})
}

// registerDrawRoutes подключает stateless-эндпоинты, работающие без хранилища.
func (h *Handler) registerDrawRoutes(r chi.Router) {
	r.Route("/draw", func(router chi.Router) {
		drawcheck.New(h.service).Register(router)
		drawpreview.New(h.service).Register(router)
	})
}
