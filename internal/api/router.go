package api

import (
	"delivery-hub-service/internal/api/handlers"
	"delivery-hub-service/internal/platform/metrics"
	"delivery-hub-service/internal/ports"
	"delivery-hub-service/internal/services"
	"net/http"

	"golang.org/x/time/rate"
)

// Dependencies for the HTTP API. Runs and Cache are optional.
type Config struct {
	Places     ports.PlaceRepository
	Runs       ports.RunStore
	Cache      ports.ResultCache
	Distance   ports.DistanceProvider
	NewSampler func(seed uint64) ports.Sampler
	Options    services.Options
	// Requests per second across all clients; zero disables limiting.
	RateLimit float64
	RateBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	placeHandler := &handlers.PlaceHandler{Repo: cfg.Places}
	optimizeHandler := &handlers.OptimizeHandler{
		Places:     cfg.Places,
		Runs:       cfg.Runs,
		Cache:      cfg.Cache,
		Distance:   cfg.Distance,
		NewSampler: cfg.NewSampler,
		Options:    cfg.Options,
	}
	runHandler := &handlers.RunHandler{Runs: cfg.Runs}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/places", placeHandler.List)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/runs", runHandler.List)
	mux.Handle("/metrics", metrics.Handler())

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return loggingMiddleware(rateLimitMiddleware(limiter, mux))
}
