package domain

import (
	"fmt"
	"time"
)

type VehicleStatus string

const (
	StatusIdle    VehicleStatus = "idle"
	StatusWaiting VehicleStatus = "waiting"
	StatusMoving  VehicleStatus = "moving"
	StatusArrived VehicleStatus = "arrived"
	StatusError   VehicleStatus = "error"
)

// Vehicle aggregate travelling from an origin place to a destination place.
// It records the segments it completed and the names of every place visited.
type Vehicle struct {
	Origin      string
	Destination string
	Status      VehicleStatus
	Position    *Point
	History     []string
	Segments    []Segment
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

func NewVehicle(origin, destination string) *Vehicle {
	return &Vehicle{
		Origin:      origin,
		Destination: destination,
		Status:      StatusIdle,
		History:     []string{origin},
	}
}

// Start moves an idle vehicle into the waiting state.
func (v *Vehicle) Start(at time.Time) error {
	if v.Status != StatusIdle {
		return fmt.Errorf("start vehicle: status is %q, want %q", v.Status, StatusIdle)
	}
	v.Status = StatusWaiting
	v.StartedAt = &at
	return nil
}

// Depart moves a waiting vehicle onto the road at its first position.
func (v *Vehicle) Depart(at *Point) error {
	if v.Status != StatusWaiting {
		return fmt.Errorf("depart vehicle: status is %q, want %q", v.Status, StatusWaiting)
	}
	v.Position = at
	v.Status = StatusMoving
	return nil
}

// MoveTo records p as the current position and appends it to the history.
func (v *Vehicle) MoveTo(p *Point) {
	v.Position = p
	v.History = append(v.History, p.Name)
}

// Complete records a finished segment and moves the vehicle to its end point.
func (v *Vehicle) Complete(seg Segment) error {
	if v.Status != StatusMoving {
		return fmt.Errorf("complete segment: vehicle is %q, want %q", v.Status, StatusMoving)
	}
	v.Segments = append(v.Segments, seg)
	v.MoveTo(seg.To)
	return nil
}

// Stop marks the vehicle as arrived.
func (v *Vehicle) Stop(at time.Time) {
	v.Status = StatusArrived
	v.FinishedAt = &at
}

// Fail marks the vehicle as errored.
func (v *Vehicle) Fail(at time.Time) {
	v.Status = StatusError
	v.FinishedAt = &at
}

// DistanceKm sums the distance of completed segments.
func (v *Vehicle) DistanceKm() float64 {
	total := 0.0
	for _, s := range v.Segments {
		total += s.DistanceKm
	}
	return total
}

// PlannedMinutes sums the estimated duration of completed segments.
func (v *Vehicle) PlannedMinutes() float64 {
	total := 0.0
	for _, s := range v.Segments {
		total += s.DurationMin
	}
	return total
}

// Elapsed returns the wall-clock time between start and finish.
func (v *Vehicle) Elapsed() time.Duration {
	if v.StartedAt == nil || v.FinishedAt == nil {
		return 0
	}
	return v.FinishedAt.Sub(*v.StartedAt)
}

// Arrived reports whether the last visited place is the destination.
func (v *Vehicle) Arrived() bool {
	return len(v.History) > 0 && v.History[len(v.History)-1] == v.Destination
}
