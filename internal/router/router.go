package router

import (
	"context"
	"net/http"
	"time"

	"voucher-api/internal/handler"
	"voucher-api/internal/metrics"
	"voucher-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries the router's cross-cutting settings.
type Config struct {
	APIKey         string
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
}

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Vouchers   *handler.VoucherHandler
	Promotions *handler.PromotionHandler
	Orders     *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, db Pinger, m *metrics.Metrics, cfg Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> Metrics -> CORS -> RateLimit
	// Clients are keyed on the socket address; forwarding headers are not trusted.
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Voucher & Promotion API is running"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(ctx); err != nil {
			logger.Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.APIKey, logger))

			r.Route("/vouchers", func(r chi.Router) {
				r.Post("/", h.Vouchers.Create)
				r.Get("/", h.Vouchers.List)
				r.Put("/{id}", h.Vouchers.Update)
				r.Delete("/{id}", h.Vouchers.Delete)
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Post("/", h.Promotions.Create)
				r.Get("/", h.Promotions.List)
				r.Put("/{id}", h.Promotions.Update)
				r.Delete("/{id}", h.Promotions.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/apply-discount", h.Orders.ApplyDiscount)
			r.Get("/{id}", h.Orders.GetByID)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
	})

	return r
}
