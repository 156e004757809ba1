package ports

import (
	"context"
	"route-decision-service/internal/domain"
)

// Cache of geocoding results keyed by normalized query.
type GeocodeCache interface {
	// Return cached coordinates for the given queries. Missing queries are absent from the map.
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, values map[string]domain.Coordinates) error
}
