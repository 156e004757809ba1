package app

import (
	"context"
	"os"
	"path/filepath"
	"route-decision-service/internal/config"
	"route-decision-service/internal/services"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	seed := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"name": "Aéroport de N'djili", "lat": -4.38575, "lon": 15.44457, "kind": "stop"}
	]`), 0o600))

	return config.Config{
		DBPath:             ":memory:",
		SeedPath:           seed,
		NominatimUserAgent: "test",
		NominatimRPS:       1,
		AverageSpeedKmh:    25,
		FuelLitersPerKm:    0.07,
		FuelPriceUSD:       1.5,
		CostNormalizerUSD:  5,
	}
}

func TestBuildOfflineSqlite(t *testing.T) {
	ctx := context.Background()

	a, err := Build(ctx, testConfig(t), Options{Offline: true, Seed: true})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	places, err := a.Places.ListPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)

	seed := int64(5)
	d, err := a.Planner.PlanTrip(ctx, services.PlanTripRequest{
		Start: "Place de la Victoire", End: "aéroport de n'djili", Strategy: "safe", Seed: &seed,
	})
	require.NoError(t, err)
	require.Equal(t, "Aéroport de N'djili", d.End.Name)
	require.Len(t, d.Alternatives, 5)

	require.NotEmpty(t, a.Landmarks)
	name, err := a.Resolver.Reverse(ctx, d.Start.Coordinates())
	require.NoError(t, err)
	require.Equal(t, "Place de la Victoire", name)
}

func TestBuildOnline(t *testing.T) {
	cfg := testConfig(t)
	cfg.NominatimURL = "http://127.0.0.1:1"
	cfg.NominatimLanguage = "en"
	cfg.NominatimTimeout = time.Second

	a, err := Build(context.Background(), cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NotNil(t, a.Resolver)
}

func TestBuildWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()

	a, err := Build(context.Background(), cfg, Options{Offline: true})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NotNil(t, a.Redis)
}

func TestBuildRejectsBadCostModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.AverageSpeedKmh = 0

	_, err := Build(context.Background(), cfg, Options{Offline: true})
	require.Error(t, err)
}
