package services

import (
	"route-decision-service/internal/domain"
	"sort"
	"strings"
)

// DefaultNearbyRadiusKm is the search radius used when callers give none.
const DefaultNearbyRadiusKm = 2.0

// NearbyPlace is a known place and its distance to the search center.
type NearbyPlace struct {
	Point      *domain.Point
	DistanceKm float64
}

// FindNearby returns the places within radiusKm of center, closest first.
//
// Sources are merged in order; a name seen in an earlier source hides the same
// name in later ones. Equal distances are ordered by name. A limit <= 0 keeps
// every match.
func FindNearby(center domain.Coordinates, radiusKm float64, limit int, sources ...[]*domain.Point) []NearbyPlace {
	seen := make(map[string]bool)
	var out []NearbyPlace
	for _, src := range sources {
		for _, p := range src {
			if p == nil {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(p.Name))
			if seen[key] {
				continue
			}
			seen[key] = true

			d := domain.Haversine(center, p.Coordinates())
			if d <= radiusKm {
				out = append(out, NearbyPlace{Point: p, DistanceKm: d})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Point.Name < out[j].Point.Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
