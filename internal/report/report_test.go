package report

import (
	"bytes"
	"context"
	"route-decision-service/internal/adapters/geocode"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/services"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func planResponse(t *testing.T, simulate bool) dto.PlanResponse {
	t.Helper()

	routes, err := services.NewRoutePlanner(
		services.DefaultCatalog(),
		services.NewWaypointResolver(services.DefaultWaypointTable()),
		services.DefaultCostModel(),
	)
	require.NoError(t, err)
	planner, err := services.NewTripPlanner(geocode.NewLandmarkResolver(), routes, services.DefaultStrategyTable())
	require.NoError(t, err)

	seed := int64(42)
	ctx := context.Background()
	d, err := planner.PlanTrip(ctx, services.PlanTripRequest{
		Start: "victoire", End: "gare", Strategy: "safe", Seed: &seed,
	})
	require.NoError(t, err)

	var v *domain.Vehicle
	if simulate {
		v = domain.NewVehicle(d.Start.Name, d.End.Name)
		require.NoError(t, services.ExecuteRoute(ctx, v, d.Chosen, routes.CostModel(), services.ExecuteOptions{}))
	}
	return dto.NewPlanResponse(d, v)
}

func TestRenderReport(t *testing.T) {
	plan := planResponse(t, true)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plan, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)))
	html := buf.String()

	require.Contains(t, html, "<!DOCTYPE html>")
	require.Contains(t, html, "Place de la Victoire")
	require.Contains(t, html, "strategy: safe")
	require.Contains(t, html, "seed: 42")
	require.Contains(t, html, "2026-03-01 09:30")
	require.Contains(t, html, "Segments")

	// one polyline per alternative, the chosen one drawn last and thicker
	require.Equal(t, len(plan.Analysis), strings.Count(html, "<polyline"))
	last := html[strings.LastIndex(html, "<polyline"):]
	require.Contains(t, last, `class="route-line chosen"`)
	require.Contains(t, last, plan.Chosen.Name)
	require.Equal(t, 2, strings.Count(html, "<circle"))
}

func TestRenderReportWithoutSimulation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, planResponse(t, false), time.Now()))
	require.NotContains(t, buf.String(), "Segments")
}

func TestBuildMapStaysOnCanvas(t *testing.T) {
	m := buildMap(planResponse(t, false))
	require.Len(t, m.Routes, 5)
	require.True(t, m.Routes[len(m.Routes)-1].Chosen)

	for _, mk := range m.Markers {
		require.GreaterOrEqual(t, mk.X, mapPadding)
		require.LessOrEqual(t, mk.X, mapWidth-mapPadding)
		require.GreaterOrEqual(t, mk.Y, mapPadding)
		require.LessOrEqual(t, mk.Y, mapHeight-mapPadding)
	}

	require.Empty(t, buildMap(dto.PlanResponse{}).Routes)
}

func TestPercent(t *testing.T) {
	require.Equal(t, 50.0, percent(2.5, 5))
	require.Equal(t, 100.0, percent(9, 3))
	require.Equal(t, 0.0, percent(-1, 3))
	require.Equal(t, 0.0, percent(1, 0))
}
