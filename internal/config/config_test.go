package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 25.0, cfg.AverageSpeedKmh)
	require.Equal(t, 0.07, cfg.FuelLitersPerKm)
	require.Equal(t, 1.5, cfg.FuelPriceUSD)
	require.Equal(t, 5.0, cfg.CostNormalizerUSD)
	require.Equal(t, "fast", cfg.DefaultStrategy)
	require.Equal(t, time.Duration(0), cfg.SimulationStepDelay)
	require.Equal(t, "fr", cfg.NominatimLanguage)
	require.Equal(t, 10*time.Second, cfg.NominatimTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AVERAGE_SPEED_KMH", "40")
	t.Setenv("COST_NORMALIZER_USD", "10")
	t.Setenv("SIMULATION_STEP_DELAY", "250ms")
	t.Setenv("DEFAULT_STRATEGY", "balanced")
	t.Setenv("NOMINATIM_LANGUAGE", "en")
	t.Setenv("NOMINATIM_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 40.0, cfg.AverageSpeedKmh)
	require.Equal(t, 10.0, cfg.CostNormalizerUSD)
	require.Equal(t, 250*time.Millisecond, cfg.SimulationStepDelay)
	require.Equal(t, "balanced", cfg.DefaultStrategy)
	require.Equal(t, "en", cfg.NominatimLanguage)
	require.Equal(t, 3*time.Second, cfg.NominatimTimeout)
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("FUEL_PRICE_USD", "cheap")
	_, err := Load()
	require.ErrorContains(t, err, "FUEL_PRICE_USD")

	t.Setenv("FUEL_PRICE_USD", "1.5")
	t.Setenv("AVERAGE_SPEED_KMH", "0")
	_, err = Load()
	require.ErrorContains(t, err, "AVERAGE_SPEED_KMH")
}

func TestGetFallback(t *testing.T) {
	t.Setenv("SOME_KEY", "  ")
	require.Equal(t, "fb", Get("SOME_KEY", "fb"))
	t.Setenv("SOME_KEY", "v")
	require.Equal(t, "v", Get("SOME_KEY", "fb"))
}
