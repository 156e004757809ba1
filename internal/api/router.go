package api

import (
	"net/http"
	"route-decision-service/internal/api/handlers"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/ports"
	"route-decision-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type RouterConfig struct {
	Planner         *services.TripPlanner
	Places          ports.PlaceRepository
	Landmarks       []*domain.Point
	Reverser        ports.ReverseResolver
	DefaultStart    string
	DefaultEnd      string
	DefaultStrategy string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	strategies := cfg.Planner.Strategies()
	defaultStrategy, ok := strategies.Resolve(cfg.DefaultStrategy)
	if !ok {
		defaultStrategy = services.DefaultStrategy
		log.Warn().
			Str("configured", cfg.DefaultStrategy).
			Str("used", string(defaultStrategy)).
			Msg("unknown default strategy")
	}

	planHandler := &handlers.PlanHandler{
		Planner:         cfg.Planner,
		DefaultStart:    cfg.DefaultStart,
		DefaultEnd:      cfg.DefaultEnd,
		DefaultStrategy: string(defaultStrategy),
	}
	strategyHandler := &handlers.StrategyHandler{
		Table:   strategies,
		Default: defaultStrategy,
	}
	placeHandler := &handlers.PlaceHandler{
		Repo:      cfg.Places,
		Landmarks: cfg.Landmarks,
		Reverser:  cfg.Reverser,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/strategies", strategyHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/report", planHandler.Report)
	if cfg.Places != nil {
		mux.HandleFunc("/places", placeHandler.List)
	}
	if cfg.Places != nil || len(cfg.Landmarks) > 0 {
		mux.HandleFunc("/places/nearby", placeHandler.Nearby)
	}
	if cfg.Reverser != nil {
		mux.HandleFunc("/places/reverse", placeHandler.Reverse)
	}

	// request ids must be in the context before the access log reads them
	return requestIDMiddleware(loggingMiddleware(mux))
}
