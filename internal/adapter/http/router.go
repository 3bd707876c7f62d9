package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tenco/bankcore/internal/adapter/http/handler"
	"github.com/tenco/bankcore/internal/adapter/http/middleware"
	"github.com/tenco/bankcore/internal/infrastructure/auth"
	"github.com/tenco/bankcore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	HistoryHandler     *handler.HistoryHandler
	HealthHandler      *handler.HealthHandler
	AuthHandler        *handler.AuthHandler

	Logger           zerolog.Logger
	JWTManager       *auth.JWTManager // nil disables token auth in favor of header auth
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	if cfg.AuthHandler != nil {
		r.Post("/auth/token", cfg.AuthHandler.Token)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.Auth(cfg.JWTManager))
		} else {
			r.Use(middleware.HeaderAuth)
		}

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/history", cfg.HistoryHandler.ListByAccount)
		})

		// Money movement
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/deposit", cfg.TransactionHandler.Deposit)
			r.Post("/withdraw", cfg.TransactionHandler.Withdraw)
			r.Post("/transfer", cfg.TransactionHandler.Transfer)
		})
	})

	return r
}
