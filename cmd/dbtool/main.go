package main

import (
	"context"
	"database/sql"
	"route-decision-service/internal/adapters/repositories"
	"route-decision-service/internal/config"
	"route-decision-service/internal/platform/db"
	"route-decision-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadDotEnv()
	obs.SetupLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")
	if err := initAndSeed(context.Background(), conn, seedPath); err != nil {
		log.Fatal().Err(err).Msg("init and seed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, repositories.DialectPostgres); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	log.Info().Str("path", seedPath).Msg("seeding places")
	if err := repositories.SeedFromJSON(ctx, repositories.NewSQLPlaceRepository(conn), seedPath); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")

	return nil
}
