package services

import (
	"math"
	"route-decision-service/internal/domain"
	"testing"
)

func TestGenerateAlternativesKinshasa(t *testing.T) {
	start, end := kinshasaEndpoints()
	planner := newDefaultPlanner()

	routes := planner.GenerateAlternatives(start, end, NewRandomSource(42))
	if len(routes) != 5 {
		t.Fatalf("expected 5 routes, got %d", len(routes))
	}

	templates := planner.Catalog().Templates()
	for i, r := range routes {
		if r.Name != templates[i].Name {
			t.Fatalf("route %d name = %q, want %q", i, r.Name, templates[i].Name)
		}
		if r.Start() != start {
			t.Fatalf("route %q does not start at the request start point", r.Name)
		}
		if r.End() != end {
			t.Fatalf("route %q does not end at the request end point", r.Name)
		}
		if len(r.Points) != len(templates[i].Waypoints) {
			t.Fatalf("route %q has %d points, want %d", r.Name, len(r.Points), len(templates[i].Waypoints))
		}

		c := r.Characteristics
		d := domain.PathDistance(r.Points)
		if c.DistanceKm != d {
			t.Fatalf("route %q distance = %v, want %v", r.Name, c.DistanceKm, d)
		}
		if math.Abs(c.TimeMin-d/25*60) > 1e-9 {
			t.Fatalf("route %q time = %v, want %v", r.Name, c.TimeMin, d/25*60)
		}
		if math.Abs(c.CostUSD-d*0.07*1.5) > 1e-9 {
			t.Fatalf("route %q cost = %v, want %v", r.Name, c.CostUSD, d*0.07*1.5)
		}
	}
}

func TestGenerateAlternativesLevelsWithinProfileBounds(t *testing.T) {
	start, end := kinshasaEndpoints()
	planner := newDefaultPlanner()

	for seed := int64(0); seed < 20; seed++ {
		routes := planner.GenerateAlternatives(start, end, NewRandomSource(seed))
		for i, r := range routes {
			p := planner.Catalog().Templates()[i].Profile
			c := r.Characteristics

			if c.CongestionLevel < 0.3*p.Time || c.CongestionLevel > 0.9*p.Time {
				t.Fatalf("seed %d route %q congestion %v outside bounds", seed, r.Name, c.CongestionLevel)
			}
			if c.SafetyLevel < 0.6*p.Safety || c.SafetyLevel > 0.95*p.Safety {
				t.Fatalf("seed %d route %q safety %v outside bounds", seed, r.Name, c.SafetyLevel)
			}
			if c.ComfortLevel < 0.5*p.Comfort || c.ComfortLevel > 0.9*p.Comfort {
				t.Fatalf("seed %d route %q comfort %v outside bounds", seed, r.Name, c.ComfortLevel)
			}
			if c.CompositeScore != p.Mean() {
				t.Fatalf("seed %d route %q composite %v, want %v", seed, r.Name, c.CompositeScore, p.Mean())
			}
		}
	}
}

func TestGenerateAlternativesIsReproducible(t *testing.T) {
	start, end := kinshasaEndpoints()
	planner := newDefaultPlanner()

	a := planner.GenerateAlternatives(start, end, NewRandomSource(7))
	b := planner.GenerateAlternatives(start, end, NewRandomSource(7))
	for i := range a {
		if a[i].Characteristics != b[i].Characteristics {
			t.Fatalf("route %q differs between identical seeds", a[i].Name)
		}
	}
}

func TestGenerateAlternativesInterpolatesUnknownWaypoints(t *testing.T) {
	catalog, err := NewCatalog(RouteTemplate{
		ID:        "detour",
		Name:      "Detour",
		Waypoints: []string{"From", "Nowhere Street", "To"},
		Profile:   domain.Weights{Time: 1, Cost: 1, Safety: 1, Comfort: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	planner, err := NewRoutePlanner(catalog, NewWaypointResolver(nil), DefaultCostModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := domain.NewPoint("A", 0, 0, domain.KindStart)
	end := domain.NewPoint("B", 1, 2, domain.KindEnd)

	// 0.5 maps to the middle of [0.2, 0.8] on both axes
	routes := planner.GenerateAlternatives(start, end, constRNG(0.5))
	mid := routes[0].Points[1]
	if mid.Name != "Nowhere Street" || mid.Kind != domain.KindWaypoint {
		t.Fatalf("unexpected waypoint %v", mid)
	}
	if math.Abs(mid.Latitude-0.5) > 1e-12 || math.Abs(mid.Longitude-1.0) > 1e-12 {
		t.Fatalf("waypoint = (%v, %v), want (0.5, 1.0)", mid.Latitude, mid.Longitude)
	}
}

func TestNewRoutePlannerValidation(t *testing.T) {
	if _, err := NewRoutePlanner(nil, NewWaypointResolver(nil), DefaultCostModel()); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
	if _, err := NewRoutePlanner(DefaultCatalog(), nil, DefaultCostModel()); err == nil {
		t.Fatalf("expected error for nil waypoint resolver")
	}
	if _, err := NewRoutePlanner(DefaultCatalog(), NewWaypointResolver(nil), CostModel{}); err == nil {
		t.Fatalf("expected error for zero cost model")
	}
}
