package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/config"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBPath:            ":memory:",
		SeedPath:          "does-not-exist.json",
		AverageSpeedKmh:   25,
		FuelLitersPerKm:   0.07,
		FuelPriceUSD:      1.5,
		CostNormalizerUSD: 5,
	}
}

func seedOf(v int64) *int64 { return &v }

func TestRunPrintsDecision(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), runArgs{
		start: "Place de la Victoire", end: "Gare Centrale", strategy: "rapide",
		seed: seedOf(3), simulate: true, offline: true,
	}, &out)
	require.NoError(t, err)

	s := out.String()
	require.Contains(t, s, "strategy: fast")
	require.Contains(t, s, "seed: 3")
	require.Contains(t, s, "Boulevard du 30 Juin")
	require.Contains(t, s, "simulation: arrived")
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), runArgs{
		start: "victoire", end: "gare", strategy: "balanced", seed: seedOf(11), offline: true, json: true,
	}, &out)
	require.NoError(t, err)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Equal(t, int64(11), res.Seed)
	require.Len(t, res.Analysis, 5)
}

func TestRunUnknownPlace(t *testing.T) {
	err := run(context.Background(), testConfig(t), runArgs{
		start: "Atlantis", end: "Gare Centrale", offline: true,
	}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestRunSeedZeroIsReplayable(t *testing.T) {
	decide := func() dto.PlanResponse {
		var out bytes.Buffer
		err := run(context.Background(), testConfig(t), runArgs{
			start: "victoire", end: "gare", strategy: "fast", seed: seedOf(0), offline: true, json: true,
		}, &out)
		require.NoError(t, err)

		var res dto.PlanResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		return res
	}

	first, second := decide(), decide()
	require.Equal(t, int64(0), first.Seed)
	require.Equal(t, first.Chosen, second.Chosen)
	require.Equal(t, first.Analysis, second.Analysis)
}

func TestRunWritesHTMLReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.html")

	err := run(context.Background(), testConfig(t), runArgs{
		start: "victoire", end: "gare", strategy: "safe", seed: seedOf(5), simulate: true, offline: true, html: path,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "<svg id=\"route-map\"")
	require.Contains(t, string(b), "seed: 5")

	err = run(context.Background(), testConfig(t), runArgs{
		start: "victoire", end: "gare", offline: true, html: filepath.Join(t.TempDir(), "missing", "trip.html"),
	}, &bytes.Buffer{})
	require.Error(t, err)
}
