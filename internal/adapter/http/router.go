package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/bookkeeper/internal/adapter/http/handler"
	"github.com/iho/bookkeeper/internal/adapter/http/middleware"
	"github.com/iho/bookkeeper/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	EntryHandler       *handler.EntryHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logging            *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/deactivate", cfg.AccountHandler.Deactivate)
			r.Post("/{id}/reactivate", cfg.AccountHandler.Reactivate)
			r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Post)
			r.Get("/", cfg.TransactionHandler.List)
			r.Post("/drafts", cfg.TransactionHandler.CreateDraft)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/{id}/entries", cfg.TransactionHandler.AddEntry)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByTransaction)
			r.Post("/{id}/post", cfg.TransactionHandler.PostDraft)
			r.Delete("/{id}", cfg.TransactionHandler.DeleteDraft)
			r.Post("/{id}/reverse", cfg.TransactionHandler.Reverse)
		})

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Post("/{id}/reverse", cfg.EntryHandler.Reverse)
			r.Get("/{id}/reversals", cfg.EntryHandler.ListReversals)
		})

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
