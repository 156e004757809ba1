package geocode

import (
	"context"
	"fmt"
	"route-decision-service/internal/domain"
)

// ReverseRadiusKm bounds how far a coordinate may be from a known point for
// StaticResolver.Reverse to name it.
const ReverseRadiusKm = 0.5

// StaticResolver resolves names from a fixed in-memory set. Lookups are
// case-insensitive and follow the optional alias table.
//
// Returned points are shared between callers and must not be mutated.
type StaticResolver struct {
	m       map[string]*domain.Point
	points  []*domain.Point
	aliases map[string]string
}

func NewStaticResolver(points ...*domain.Point) *StaticResolver {
	m := make(map[string]*domain.Point, len(points))
	for _, p := range points {
		m[normalizeName(p.Name)] = p
	}
	return &StaticResolver{m: m, points: points}
}

func (s *StaticResolver) Resolve(ctx context.Context, name string) (*domain.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := normalizeName(name)
	if c, ok := s.aliases[key]; ok {
		key = c
	}
	p, ok := s.m[key]
	if !ok {
		return nil, fmt.Errorf("resolve place %q: %w", name, ErrPlaceNotFound)
	}
	return p, nil
}

// Nearest returns the known point closest to c and its distance in km.
// Ties keep the earlier point.
func (s *StaticResolver) Nearest(c domain.Coordinates) (*domain.Point, float64, bool) {
	var best *domain.Point
	bestKm := 0.0
	for _, p := range s.points {
		d := domain.Haversine(c, p.Coordinates())
		if best == nil || d < bestKm {
			best, bestKm = p, d
		}
	}
	return best, bestKm, best != nil
}

// Reverse names the known point nearest to c, if it lies within ReverseRadiusKm.
func (s *StaticResolver) Reverse(ctx context.Context, c domain.Coordinates) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, d, ok := s.Nearest(c)
	if !ok || d > ReverseRadiusKm {
		return "", fmt.Errorf("reverse geocode (%v, %v): %w", c.Lat, c.Lon, ErrPlaceNotFound)
	}
	return p.Name, nil
}
