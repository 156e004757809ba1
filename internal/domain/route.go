package domain

import (
	"fmt"
	"time"
)

// Weights is a vector over the four decision criteria.
// Each weight is expected in [0, 1]; the vector is not normalized.
type Weights struct {
	Time    float64
	Cost    float64
	Safety  float64
	Comfort float64
}

// Mean returns the average of the four weights.
func (w Weights) Mean() float64 {
	return (w.Time + w.Cost + w.Safety + w.Comfort) / 4
}

// Valid reports whether every weight lies within [0, 1].
func (w Weights) Valid() bool {
	for _, v := range []float64{w.Time, w.Cost, w.Safety, w.Comfort} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// CharacteristicSet is the derived numeric profile of one candidate route.
// The three levels and the composite score lie within [0, 1].
type CharacteristicSet struct {
	DistanceKm      float64
	TimeMin         float64
	CostUSD         float64
	CongestionLevel float64
	SafetyLevel     float64
	ComfortLevel    float64
	CompositeScore  float64
}

// Represents one candidate itinerary between a start and an end Point.
// A RouteAlternative is built once per template per planning request and is
// read-only once its characteristics are attached.
type RouteAlternative struct {
	Name            string
	Points          []*Point
	Characteristics CharacteristicSet
}

func (r *RouteAlternative) Start() *Point { return r.Points[0] }

func (r *RouteAlternative) End() *Point { return r.Points[len(r.Points)-1] }

func (r *RouteAlternative) String() string {
	return fmt.Sprintf("%s (%d points)", r.Name, len(r.Points))
}

// Represents one travelled leg between two consecutive route points.
// Intermediate holds drawing points between From and To; they are not visited.
type Segment struct {
	From         *Point
	To           *Point
	DistanceKm   float64
	DurationMin  float64
	Intermediate []*Point
	ArrivedAt    time.Time
}
