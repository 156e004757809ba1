package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds process-wide settings read once at startup.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	RedisAddr   string
	SeedPath    string

	NominatimURL       string
	NominatimUserAgent string
	NominatimRPS       float64
	NominatimLanguage  string
	NominatimTimeout   time.Duration
	DefaultCity        string
	DefaultCountry     string

	StartPlace      string
	EndPlace        string
	DefaultStrategy string

	AverageSpeedKmh   float64
	FuelLitersPerKm   float64
	FuelPriceUSD      float64
	CostNormalizerUSD float64

	SimulationStepDelay time.Duration

	LogLevel  string
	LogFormat string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads a .env file when one exists. Missing files are not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found (using environment variables)")
	}
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	LoadDotEnv()

	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/places.json"),

		NominatimURL:       Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "route-decision-service/1.0"),
		NominatimLanguage:  Get("NOMINATIM_LANGUAGE", "fr"),
		DefaultCity:        Get("DEFAULT_CITY", "Kinshasa"),
		DefaultCountry:     Get("DEFAULT_COUNTRY", "République Démocratique du Congo"),

		StartPlace:      Get("START_PLACE", "Place de la Victoire"),
		EndPlace:        Get("END_PLACE", "Gare Centrale"),
		DefaultStrategy: Get("DEFAULT_STRATEGY", "fast"),

		LogLevel:  Get("LOG_LEVEL", "info"),
		LogFormat: Get("LOG_FORMAT", "json"),
	}

	floats := []struct {
		key      string
		fallback float64
		dst      *float64
	}{
		{"NOMINATIM_RPS", 1, &cfg.NominatimRPS},
		{"AVERAGE_SPEED_KMH", 25, &cfg.AverageSpeedKmh},
		{"FUEL_LITERS_PER_KM", 0.07, &cfg.FuelLitersPerKm},
		{"FUEL_PRICE_USD", 1.5, &cfg.FuelPriceUSD},
		{"COST_NORMALIZER_USD", 5, &cfg.CostNormalizerUSD},
	}
	for _, f := range floats {
		v, err := getFloat(f.key, f.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		*f.dst = v
	}

	delay, err := getDuration("SIMULATION_STEP_DELAY", 0)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.SimulationStepDelay = delay

	timeout, err := getDuration("NOMINATIM_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.NominatimTimeout = timeout

	if cfg.AverageSpeedKmh <= 0 {
		return Config{}, fmt.Errorf("load config: AVERAGE_SPEED_KMH must be positive, got %v", cfg.AverageSpeedKmh)
	}
	if cfg.CostNormalizerUSD <= 0 {
		return Config{}, fmt.Errorf("load config: COST_NORMALIZER_USD must be positive, got %v", cfg.CostNormalizerUSD)
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}
