// Package app assembles the concrete adapters behind the service ports.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"route-decision-service/internal/adapters/cache"
	"route-decision-service/internal/adapters/geocode"
	"route-decision-service/internal/adapters/repositories"
	"route-decision-service/internal/config"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/db"
	"route-decision-service/internal/ports"
	"route-decision-service/internal/services"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// App holds the wired components of one process.
type App struct {
	DB        *sql.DB
	Redis     *redis.Client
	Places    ports.PlaceRepository
	Resolver  *geocode.Resolver
	Landmarks []*domain.Point
	Planner   *services.TripPlanner
}

type Options struct {
	// Offline disables Nominatim; unknown places then fail to resolve.
	Offline bool
	// Seed loads the JSON seed file into the place repository.
	Seed bool
}

// Build opens storage and wires the trip planner.
//
// Postgres is used when DATABASE_URL is set, a local SQLite file otherwise.
// A Redis geocode cache replaces the SQL one when REDIS_ADDR is set.
func Build(ctx context.Context, cfg config.Config, opts Options) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	dialect := repositories.DialectSQLite
	if cfg.DatabaseURL != "" {
		dialect = repositories.DialectPostgres
		a.DB, err = db.Open(cfg.DatabaseURL)
	} else {
		a.DB, err = db.OpenSqlite(cfg.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	if err := repositories.InitSchema(ctx, a.DB, dialect); err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	var geocodeCache ports.GeocodeCache
	if dialect == repositories.DialectPostgres {
		a.Places = repositories.NewSQLPlaceRepository(a.DB)
		geocodeCache = cache.NewSQLGeocodeCache(a.DB)
	} else {
		a.Places = repositories.NewSqlitePlaceRepository(a.DB)
		geocodeCache = cache.NewSqliteGeocodeCache(a.DB)
	}

	if opts.Seed {
		if err := seedIfPresent(ctx, a.Places, cfg.SeedPath); err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
	}

	if cfg.RedisAddr != "" {
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.Redis.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("build app: redis connection failed: %w", err)
		}
		geocodeCache = cache.NewRedisGeocodeCache(a.Redis)
	}

	var client *geocode.NominatimClient
	if !opts.Offline {
		client, err = geocode.NewNominatimClient(cfg.NominatimURL, cfg.NominatimUserAgent, cfg.NominatimRPS,
			geocode.WithHTTPClient(&http.Client{Timeout: cfg.NominatimTimeout}),
			geocode.WithLanguage(cfg.NominatimLanguage),
		)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
	}

	a.Landmarks = geocode.Landmarks()
	a.Resolver = geocode.NewResolver(geocode.ResolverConfig{
		Repository: a.Places,
		Cache:      geocodeCache,
		Client:     client,
		City:       cfg.DefaultCity,
		Country:    cfg.DefaultCountry,
	})

	model := services.CostModel{
		AverageSpeedKmh:   cfg.AverageSpeedKmh,
		FuelLitersPerKm:   cfg.FuelLitersPerKm,
		FuelPriceUSD:      cfg.FuelPriceUSD,
		CostNormalizerUSD: cfg.CostNormalizerUSD,
	}
	routes, err := services.NewRoutePlanner(
		services.DefaultCatalog(),
		services.NewWaypointResolver(services.DefaultWaypointTable()),
		model,
	)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	a.Planner, err = services.NewTripPlanner(a.Resolver, routes, services.DefaultStrategyTable())
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	log.Info().
		Str("db", string(dialect)).
		Bool("redis", a.Redis != nil).
		Bool("nominatim", client != nil).
		Msg("app wired")

	return a, nil
}

func seedIfPresent(ctx context.Context, repo ports.PlaceRepository, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("seed file not found, skipping")
		return nil
	}
	return repositories.SeedFromJSON(ctx, repo, path)
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
