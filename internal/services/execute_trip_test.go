package services

import (
	"context"
	"route-decision-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEstimateTravelMinutes(t *testing.T) {
	require.InDelta(t, 12.0, EstimateTravelMinutes(5, 25, TrafficNormal), 1e-9)
	require.InDelta(t, 9.6, EstimateTravelMinutes(5, 25, TrafficFluid), 1e-9)
	require.InDelta(t, 15.6, EstimateTravelMinutes(5, 25, TrafficDense), 1e-9)
	require.InDelta(t, 12.0, EstimateTravelMinutes(5, 25, TrafficCondition("gridlock")), 1e-9)

	require.Equal(t, TrafficFluid, ParseTrafficCondition("Fluide"))
	require.Equal(t, TrafficDense, ParseTrafficCondition("dense"))
	require.Equal(t, TrafficNormal, ParseTrafficCondition("???"))
}

func TestIntermediatePoints(t *testing.T) {
	a := domain.NewPoint("A", 0, 0, domain.KindStart)
	b := domain.NewPoint("B", 4, 4, domain.KindEnd)

	pts := IntermediatePoints(a, b, 3)
	require.Len(t, pts, 3)

	// the middle point is at ratio 0.5: sin = 1, cos = 0
	require.InDelta(t, 2.002, pts[1].Latitude, 1e-9)
	require.InDelta(t, 2.0, pts[1].Longitude, 1e-9)
	require.Equal(t, domain.KindWaypoint, pts[1].Kind)

	require.Empty(t, IntermediatePoints(a, b, 0))
}

func TestExecuteRoute(t *testing.T) {
	start, end := kinshasaEndpoints()
	d, err := (&TripPlanner{routes: newDefaultPlanner(), strategies: DefaultStrategyTable()}).
		Decide(start, end, "fast", NewRandomSource(1))
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	v := domain.NewVehicle(start.Name, end.Name)
	err = ExecuteRoute(context.Background(), v, d.Chosen, DefaultCostModel(), ExecuteOptions{
		Intermediate: 3,
		Now:          now,
	})
	require.NoError(t, err)

	require.Equal(t, domain.StatusArrived, v.Status)
	require.True(t, v.Arrived())
	require.Len(t, v.Segments, len(d.Chosen.Points)-1)
	require.Len(t, v.History, len(d.Chosen.Points))
	require.Same(t, end, v.Position)
	require.InDelta(t, d.Chosen.Characteristics.DistanceKm, v.DistanceKm(), 1e-9)
	require.InDelta(t, d.Chosen.Characteristics.TimeMin, v.PlannedMinutes(), 1e-9)
	require.Len(t, v.Segments[0].Intermediate, 3)
	require.Positive(t, v.Elapsed())
}

func TestExecuteRouteCancelled(t *testing.T) {
	start, end := kinshasaEndpoints()
	r := &domain.RouteAlternative{
		Name:   "direct",
		Points: []*domain.Point{start, domain.NewPoint("mid", -4.33, 15.31, domain.KindWaypoint), end},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := domain.NewVehicle(start.Name, end.Name)
	err := ExecuteRoute(ctx, v, r, DefaultCostModel(), ExecuteOptions{StepDelay: time.Hour})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, domain.StatusError, v.Status)
	require.False(t, v.Arrived())
}

func TestExecuteRouteRejectsBusyVehicle(t *testing.T) {
	start, end := kinshasaEndpoints()
	r := &domain.RouteAlternative{Name: "direct", Points: []*domain.Point{start, end}}

	v := domain.NewVehicle(start.Name, end.Name)
	require.NoError(t, v.Start(time.Now()))

	require.Error(t, ExecuteRoute(context.Background(), v, r, DefaultCostModel(), ExecuteOptions{}))
	require.Error(t, ExecuteRoute(context.Background(), domain.NewVehicle("a", "b"),
		&domain.RouteAlternative{Name: "short", Points: []*domain.Point{start}}, DefaultCostModel(), ExecuteOptions{}))
}
