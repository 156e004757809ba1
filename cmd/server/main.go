package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"route-decision-service/internal/api"
	"route-decision-service/internal/app"
	"route-decision-service/internal/config"
	"route-decision-service/internal/platform/obs"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, Nominatim) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed demo places on startup for local runs; Postgres is seeded by dbtool.
	a, err := app.Build(ctx, cfg, app.Options{Seed: cfg.DatabaseURL == ""})
	if err != nil {
		log.Fatal().Err(err).Msg("build app")
	}
	defer a.Close()

	router := api.NewRouter(api.RouterConfig{
		Planner:         a.Planner,
		Places:          a.Places,
		Landmarks:       a.Landmarks,
		Reverser:        a.Resolver,
		DefaultStart:    cfg.StartPlace,
		DefaultEnd:      cfg.EndPlace,
		DefaultStrategy: cfg.DefaultStrategy,
	})

	// Write timeout leaves room for cold-cache Nominatim lookups at 1 req/s.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
