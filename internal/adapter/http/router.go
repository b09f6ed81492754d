package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/finbooks/finbooks/internal/adapter/http/handler"
	"github.com/finbooks/finbooks/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler    *handler.EntryHandler
	TransferHandler *handler.TransferHandler
	RateHandler     *handler.RateHandler
	CurrencyHandler *handler.CurrencyHandler
	RegisterHandler *handler.RegisterHandler
	ClientHandler   *handler.ClientHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
	RateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Post("/detached", cfg.EntryHandler.CreateDetached)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Put("/{id}", cfg.EntryHandler.Update)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransferHandler.Get)
		})

		// Currencies and exchange rates
		r.Route("/currencies", func(r chi.Router) {
			r.Post("/", cfg.CurrencyHandler.Create)
			r.Get("/", cfg.CurrencyHandler.List)
			r.Get("/default", cfg.CurrencyHandler.GetDefault)
			r.Get("/{code}", cfg.CurrencyHandler.Get)
		})
		r.Route("/rates", func(r chi.Router) {
			r.Post("/", cfg.RateHandler.Add)
			r.Get("/{code}", cfg.RateHandler.EffectiveOn)
			r.Get("/{code}/history", cfg.RateHandler.History)
		})

		// Cash registers
		r.Route("/registers", func(r chi.Router) {
			r.Post("/", cfg.RegisterHandler.Create)
			r.Get("/", cfg.RegisterHandler.List)
			r.Get("/{id}", cfg.RegisterHandler.Get)
			r.Get("/{id}/balance", cfg.RegisterHandler.GetBalance)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByRegister)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByRegister)
		})

		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Get("/{id}/balance", cfg.ClientHandler.GetBalance)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByClient)
			r.Post("/{id}/reconcile", cfg.ClientHandler.Reconcile)
		})
	})

	return r
}
