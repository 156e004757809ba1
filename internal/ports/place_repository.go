package ports

import (
	"context"
	"route-decision-service/internal/domain"
)

// Port: a boundary for named places stored by the service.
type PlaceRepository interface {
	// Retrieve all stored places ordered by name.
	ListPlaces(ctx context.Context) ([]*domain.Point, error)
	// Look up one place by exact, case-insensitive name. Returns (nil, nil) when absent.
	FindPlace(ctx context.Context, name string) (*domain.Point, error)
	// Return places whose name contains query, case-insensitively.
	SearchPlaces(ctx context.Context, query string, limit int) ([]*domain.Point, error)
	// Insert or update places keyed by name.
	UpsertPlaces(ctx context.Context, places []*domain.Point) error
}
