package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/memberledger/internal/adapter/http/handler"
	"github.com/iho/memberledger/internal/adapter/http/middleware"
	"github.com/iho/memberledger/internal/domain"
	"github.com/iho/memberledger/internal/infrastructure/metrics"
	"github.com/iho/memberledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	MemberHandler  *handler.MemberHandler
	BalanceHandler *handler.BalanceHandler
	BillHandler    *handler.BillHandler
	DictHandler    *handler.DictHandler
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	HealthHandler  *handler.HealthHandler

	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// Authentication is enabled when both are set.
	TokenVerifier middleware.TokenVerifier
	TokenStore    usecase.TokenStore
}

func (cfg RouterConfig) authEnabled() bool {
	return cfg.TokenVerifier != nil && cfg.TokenStore != nil
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			if cfg.authEnabled() {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier, cfg.TokenStore))
			}
			// Replays are only served to authenticated callers.
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
			}
			if cfg.authEnabled() && cfg.AuthHandler != nil {
				r.Post("/auth/logout", cfg.AuthHandler.Logout)
				r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)
			}
			role := roleGate(cfg.authEnabled())

			// Members
			r.Route("/members", func(r chi.Router) {
				r.With(role(domain.RoleViewer)).Get("/", cfg.MemberHandler.List)
				r.With(role(domain.RoleOperator)).Post("/", cfg.MemberHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.With(role(domain.RoleViewer)).Get("/", cfg.MemberHandler.Get)
					r.With(role(domain.RoleViewer)).Get("/bills", cfg.BillHandler.ListByMember)
					r.With(role(domain.RoleViewer)).Get("/reconciliation", cfg.BillHandler.Reconcile)
					r.With(role(domain.RoleOperator)).Put("/", cfg.MemberHandler.Update)
					r.With(role(domain.RoleOperator)).Delete("/", cfg.MemberHandler.Delete)
					r.With(role(domain.RoleOperator)).Post("/login", cfg.MemberHandler.RecordLogin)
					r.With(role(domain.RoleOperator)).Post("/increment", cfg.BalanceHandler.Increment)
					r.With(role(domain.RoleOperator)).Post("/decrement", cfg.BalanceHandler.Decrement)
				})
			})

			// Dictionaries
			r.Route("/dicts", func(r chi.Router) {
				r.With(role(domain.RoleViewer)).Get("/", cfg.DictHandler.List)
				r.With(role(domain.RoleViewer)).Get("/sign/{sign}", cfg.DictHandler.GetBySign)
				r.With(role(domain.RoleViewer)).Get("/{id}", cfg.DictHandler.Get)
				r.With(role(domain.RoleAdmin)).Post("/", cfg.DictHandler.Create)
				r.With(role(domain.RoleAdmin)).Put("/{id}", cfg.DictHandler.Update)
				r.With(role(domain.RoleAdmin)).Delete("/{id}", cfg.DictHandler.Delete)
			})

			// Admin users
			if cfg.UserHandler != nil {
				r.Route("/users", func(r chi.Router) {
					r.Use(role(domain.RoleAdmin))
					r.Get("/", cfg.UserHandler.List)
					r.Post("/", cfg.UserHandler.Create)
					r.Get("/{id}", cfg.UserHandler.Get)
				})
			}
		})
	})

	return r
}

// roleGate returns RequireRole when authentication is on and a pass-through otherwise.
func roleGate(enabled bool) func(domain.Role) func(http.Handler) http.Handler {
	if !enabled {
		return func(domain.Role) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler { return next }
		}
	}
	return middleware.RequireRole
}
