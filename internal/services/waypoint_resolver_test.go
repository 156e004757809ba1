package services

import (
	"route-decision-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaypointResolverTableHit(t *testing.T) {
	r := NewWaypointResolver(DefaultWaypointTable())
	start, end := kinshasaEndpoints()

	rng := constRNG(0.5)
	p := r.Resolve("Palais du Peuple", start, end, rng)
	require.Equal(t, "Palais du Peuple", p.Name)
	require.Equal(t, domain.KindWaypoint, p.Kind)
	require.Equal(t, -4.318, p.Latitude)
	require.Equal(t, 15.312, p.Longitude)
	require.Equal(t, 0, rng.i, "table hits must not consume randomness")
}

func TestWaypointResolverInterpolationBounds(t *testing.T) {
	r := NewWaypointResolver(nil)
	start := domain.NewPoint("S", -4.0, 15.0, domain.KindStart)
	end := domain.NewPoint("E", -5.0, 16.0, domain.KindEnd)

	lo := r.Resolve("x", start, end, constRNG(0))
	require.InDelta(t, -4.2, lo.Latitude, 1e-12)
	require.InDelta(t, 15.2, lo.Longitude, 1e-12)

	// independent fractions per axis
	mixed := r.Resolve("x", start, end, &seqRNG{vals: []float64{0, 0.999999}})
	require.InDelta(t, -4.2, mixed.Latitude, 1e-12)
	require.InDelta(t, 15.8, mixed.Longitude, 1e-5)

	for seed := int64(0); seed < 50; seed++ {
		p := r.Resolve("x", start, end, NewRandomSource(seed))
		require.GreaterOrEqual(t, p.Latitude, -4.8)
		require.LessOrEqual(t, p.Latitude, -4.2)
		require.GreaterOrEqual(t, p.Longitude, 15.2)
		require.LessOrEqual(t, p.Longitude, 15.8)
	}
}

func TestWaypointResolverCopiesTable(t *testing.T) {
	table := map[string]domain.Coordinates{"A": {Lat: 1, Lon: 1}}
	r := NewWaypointResolver(table)
	delete(table, "A")
	require.True(t, r.Known("A"))
	require.False(t, r.Known("B"))
}
