package domain

import (
	"fmt"
	"strings"
)

// PointKind describes the role a Point plays on a route.
type PointKind string

const (
	KindStart    PointKind = "start"
	KindEnd      PointKind = "end"
	KindWaypoint PointKind = "waypoint"
	KindStop     PointKind = "stop"
	KindUnknown  PointKind = "unknown"
)

// ParsePointKind maps a stored kind string to a PointKind.
// Unrecognized values map to KindUnknown.
func ParsePointKind(s string) PointKind {
	switch k := PointKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindStart, KindEnd, KindWaypoint, KindStop:
		return k
	default:
		return KindUnknown
	}
}

// Represents a named geographic location.
//
// Points are shared by pointer and never mutated after construction; routes
// rely on pointer identity to recognise the exact start and end of a request.
// Latitude must be within [-90, 90] and longitude within [-180, 180]; this is
// guaranteed by whoever resolves the place, not re-checked here.
type Point struct {
	Name      string
	Latitude  float64
	Longitude float64
	Kind      PointKind
}

func NewPoint(name string, lat, lon float64, kind PointKind) *Point {
	if kind == "" {
		kind = KindUnknown
	}
	return &Point{Name: name, Latitude: lat, Longitude: lon, Kind: kind}
}

// WithKind returns a copy of p carrying a different kind.
func (p *Point) WithKind(kind PointKind) *Point {
	return NewPoint(p.Name, p.Latitude, p.Longitude, kind)
}

func (p *Point) Coordinates() Coordinates {
	return Coordinates{Lat: p.Latitude, Lon: p.Longitude}
}

func (p *Point) String() string {
	return fmt.Sprintf("%s (%.5f, %.5f)", p.Name, p.Latitude, p.Longitude)
}

// Distance returns the great-circle distance in kilometers between a and b.
func Distance(a, b *Point) float64 {
	return Haversine(a.Coordinates(), b.Coordinates())
}

// PathDistance sums the distance over consecutive pairs of points.
// Paths with fewer than two points have zero length.
func PathDistance(points []*Point) float64 {
	if len(points) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Distance(points[i], points[i+1])
	}
	return total
}
