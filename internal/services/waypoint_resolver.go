package services

import (
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

// Interpolation fractions for labels missing from the coordinate table.
const (
	minInterpolation = 0.2
	maxInterpolation = 0.8
)

// WaypointResolver maps waypoint labels to points.
//
// Known labels come from a fixed coordinate table. Unknown labels never fail:
// they are placed between start and end, each axis advanced by its own random
// fraction in [0.2, 0.8]. The table is copied at construction and never
// modified, so one resolver can serve concurrent requests.
type WaypointResolver struct {
	table map[string]domain.Coordinates
}

func NewWaypointResolver(table map[string]domain.Coordinates) *WaypointResolver {
	t := make(map[string]domain.Coordinates, len(table))
	for k, v := range table {
		t[k] = v
	}
	return &WaypointResolver{table: t}
}

// Known reports whether label has fixed coordinates.
func (r *WaypointResolver) Known(label string) bool {
	_, ok := r.table[label]
	return ok
}

// Resolve returns a waypoint point for label.
func (r *WaypointResolver) Resolve(label string, start, end *domain.Point, rng RandomSource) *domain.Point {
	if c, ok := r.table[label]; ok {
		return domain.NewPoint(label, c.Lat, c.Lon, domain.KindWaypoint)
	}

	latFrac := uniform(rng, minInterpolation, maxInterpolation)
	lonFrac := uniform(rng, minInterpolation, maxInterpolation)
	c := domain.Interpolate(start.Coordinates(), end.Coordinates(), latFrac, lonFrac)

	obs.WaypointInterpolations.Inc()
	log.Debug().
		Str("label", label).
		Float64("lat", c.Lat).
		Float64("lon", c.Lon).
		Msg("waypoint not in table, interpolated")

	return domain.NewPoint(label, c.Lat, c.Lon, domain.KindWaypoint)
}

// DefaultWaypointTable returns the fixed coordinates of Kinshasa landmarks
// used by the default catalog.
func DefaultWaypointTable() map[string]domain.Coordinates {
	return map[string]domain.Coordinates{
		"Tour de l'Échangeur":         {Lat: -4.33500, Lon: 15.30600},
		"Boulevard du 30 Juin":        {Lat: -4.32800, Lon: 15.30900},
		"Avenue de la Justice":        {Lat: -4.32000, Lon: 15.31100},
		"Palais du Peuple":            {Lat: -4.31800, Lon: 15.31200},
		"Carrefour Forescom":          {Lat: -4.33000, Lon: 15.30700},
		"Avenue des Aviateurs":        {Lat: -4.32200, Lon: 15.30800},
		"Place du Marché":             {Lat: -4.32600, Lon: 15.31000},
		"Marché Central":              {Lat: -4.32500, Lon: 15.31000},
		"Stade des Martyrs":           {Lat: -4.33200, Lon: 15.30800},
		"Avenue de la Libération":     {Lat: -4.31900, Lon: 15.31200},
		"Hôpital Général de Kinshasa": {Lat: -4.32200, Lon: 15.31100},
		"Immeuble Sozacom":            {Lat: -4.31700, Lon: 15.31300},
	}
}
