package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Fraud-stop/shield-wise-guard/internal/api/handlers"
	apimiddleware "github.com/Fraud-stop/shield-wise-guard/internal/api/middleware"
	"github.com/Fraud-stop/shield-wise-guard/internal/config"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	limiter  apimiddleware.Limiter
	logger   *logger.Logger
}

// NewRouter creates a new Router instance. limiter may be nil when rate
// limiting is disabled.
func NewRouter(cfg config.Config, h *handlers.Handlers, limiter apimiddleware.Limiter, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		limiter:  limiter,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger, "/health", "/ready"))
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	router.Get("/health", r.handlers.Health.Check)
	router.Get("/ready", r.handlers.Health.Ready)

	// The WebSocket feed is long-lived, so it sits outside the timeout and
	// rate limit applied to the JSON API.
	router.Get("/api/v1/stream", r.handlers.Streaming.HandleWebSocket)

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(60 * time.Second))
		if r.config.RateLimit.Enabled && r.limiter != nil {
			api.Use(apimiddleware.RateLimiter(r.limiter, r.config.RateLimit, r.logger))
		}

		api.Route("/check", func(check chi.Router) {
			check.Post("/", r.handlers.Check.Check)
			check.Post("/batch", r.handlers.Check.CheckBatch)
		})
		api.Get("/reference", r.handlers.Check.Reference)

		api.Route("/chat", func(chat chi.Router) {
			chat.Post("/respond", r.handlers.Chat.Respond)
			chat.Post("/sessions", r.handlers.Chat.StartSession)
			chat.Get("/sessions/{id}", r.handlers.Chat.GetSession)
			chat.Post("/sessions/{id}/messages", r.handlers.Chat.SendMessage)
		})

		api.Get("/alerts", r.handlers.Content.Alerts)
		api.Get("/trends", r.handlers.Content.Trends)
		api.Get("/tips", r.handlers.Content.Tips)
		api.Route("/quiz", func(quiz chi.Router) {
			quiz.Get("/", r.handlers.Content.Quiz)
			quiz.Post("/{id}/answer", r.handlers.Content.Answer)
		})

		api.Route("/reports", func(reports chi.Router) {
			reports.Post("/", r.handlers.Reports.Submit)
			reports.Get("/categories", r.handlers.Reports.Categories)
		})

		api.Get("/stream/stats", r.handlers.Streaming.GetStats)
	})

	return router
}
