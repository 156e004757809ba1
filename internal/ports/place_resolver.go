package ports

import (
	"context"
	"route-decision-service/internal/domain"
)

// Contract for turning a human-readable place name into a point.
type PlaceResolver interface {
	// Resolve a place name. Implementations return an error wrapping
	// geocode.ErrPlaceNotFound when no source knows the place.
	Resolve(ctx context.Context, name string) (*domain.Point, error)
}

// Optional extension of PlaceResolver that maps coordinates back to a name.
type ReverseResolver interface {
	PlaceResolver
	Reverse(ctx context.Context, c domain.Coordinates) (string, error)
}
