package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/junovet/booking-engine/internal/availability"
	httpmiddleware "github.com/junovet/booking-engine/internal/http/middleware"
	"github.com/junovet/booking-engine/internal/locations"
	"github.com/junovet/booking-engine/internal/observability/metrics"
	"github.com/junovet/booking-engine/internal/selection"
	"github.com/junovet/booking-engine/internal/versions"
	"github.com/junovet/booking-engine/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AvailabilityHandler *availability.Handler
	SelectionHandler    *selection.Handler
	VersionsHandler     *versions.Handler
	StatsHandler        *metrics.StatsHandler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.AvailabilityHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	if cfg.StatsHandler != nil {
		r.Get("/api/stats", cfg.StatsHandler.Snapshot)
	}

	// Widget-compat endpoints, same paths the embedded widget already calls.
	if cfg.VersionsHandler != nil {
		r.Get("/design-versions.json", cfg.VersionsHandler.ServeFile)
		r.Post("/api/design-versions", cfg.VersionsHandler.ReplaceAll)
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/availability", func(r chi.Router) {
			r.Get("/day", cfg.AvailabilityHandler.Day)
			r.Get("/week", cfg.AvailabilityHandler.Week)
			r.Get("/next", cfg.AvailabilityHandler.Next)
			r.Get("/first", cfg.AvailabilityHandler.First)
		})
		api.Get("/locations", locations.ListHandler)
		if cfg.SelectionHandler != nil {
			api.Mount("/sessions", cfg.SelectionHandler.Routes())
		}
		if cfg.VersionsHandler != nil {
			api.Mount("/versions", cfg.VersionsHandler.Routes())
		}
	})

	return r
}
