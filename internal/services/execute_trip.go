package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// TrafficCondition scales travel time estimates.
type TrafficCondition string

const (
	TrafficFluid  TrafficCondition = "fluid"
	TrafficNormal TrafficCondition = "normal"
	TrafficDense  TrafficCondition = "dense"
)

var trafficFactors = map[TrafficCondition]float64{
	TrafficFluid:  0.8,
	TrafficNormal: 1.0,
	TrafficDense:  1.3,
}

// ParseTrafficCondition accepts the English and French labels.
// Unknown labels are TrafficNormal.
func ParseTrafficCondition(s string) TrafficCondition {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fluid", "fluide":
		return TrafficFluid
	case "dense":
		return TrafficDense
	default:
		return TrafficNormal
	}
}

// EstimateTravelMinutes returns the time to cover distanceKm at speedKmh,
// scaled by the traffic factor.
func EstimateTravelMinutes(distanceKm, speedKmh float64, cond TrafficCondition) float64 {
	factor, ok := trafficFactors[cond]
	if !ok {
		factor = 1.0
	}
	return distanceKm / speedKmh * 60 * factor
}

const intermediateOffsetDeg = 0.002

// IntermediatePoints returns n points between from and to for drawing a
// segment. Each point sits on the straight line at i/(n+1), nudged by a
// sinusoidal offset so the drawn path does not look ruler-straight.
func IntermediatePoints(from, to *domain.Point, n int) []*domain.Point {
	out := make([]*domain.Point, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		ratio := float64(i) / float64(n+1)
		lat := from.Latitude + (to.Latitude-from.Latitude)*ratio + math.Sin(ratio*math.Pi)*intermediateOffsetDeg
		lon := from.Longitude + (to.Longitude-from.Longitude)*ratio + math.Cos(ratio*math.Pi)*intermediateOffsetDeg
		out = append(out, domain.NewPoint(fmt.Sprintf("step %d", i), lat, lon, domain.KindWaypoint))
	}
	return out
}

type ExecuteOptions struct {
	// StepDelay is waited between segments; zero runs without pausing.
	StepDelay time.Duration
	Traffic   TrafficCondition
	// Intermediate is the number of drawing points generated per segment.
	Intermediate int
	Now          func() time.Time
}

// ExecuteRoute drives vehicle along route segment by segment.
//
// The vehicle must be idle. On context cancellation the vehicle is failed and
// the context error is returned; segments completed so far are kept.
func ExecuteRoute(
	ctx context.Context,
	vehicle *domain.Vehicle,
	route *domain.RouteAlternative,
	model CostModel,
	opts ExecuteOptions,
) (err error) {
	defer obs.Time(ctx, "services.ExecuteRoute")(&err)

	if vehicle == nil || route == nil {
		return errors.New("execute route: vehicle and route are required")
	}
	if len(route.Points) < 2 {
		return fmt.Errorf("execute route %q: need at least 2 points, got %d", route.Name, len(route.Points))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.Traffic == "" {
		opts.Traffic = TrafficNormal
	}

	if err := vehicle.Start(now()); err != nil {
		return fmt.Errorf("execute route %q: %w", route.Name, err)
	}
	if err := vehicle.Depart(route.Start()); err != nil {
		return fmt.Errorf("execute route %q: %w", route.Name, err)
	}

	for i := 0; i+1 < len(route.Points); i++ {
		if i > 0 && opts.StepDelay > 0 {
			timer := time.NewTimer(opts.StepDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				vehicle.Fail(now())
				return fmt.Errorf("execute route %q: segment %d: %w", route.Name, i+1, ctx.Err())
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			vehicle.Fail(now())
			return fmt.Errorf("execute route %q: segment %d: %w", route.Name, i+1, err)
		}

		from, to := route.Points[i], route.Points[i+1]
		d := domain.Distance(from, to)
		seg := domain.Segment{
			From:         from,
			To:           to,
			DistanceKm:   d,
			DurationMin:  EstimateTravelMinutes(d, model.AverageSpeedKmh, opts.Traffic),
			Intermediate: IntermediatePoints(from, to, opts.Intermediate),
			ArrivedAt:    now(),
		}
		if err := vehicle.Complete(seg); err != nil {
			vehicle.Fail(now())
			return fmt.Errorf("execute route %q: %w", route.Name, err)
		}

		log.Debug().
			Str("req_id", obs.RequestID(ctx)).
			Int("segment", i+1).
			Str("from", from.Name).
			Str("to", to.Name).
			Float64("km", d).
			Msg("segment completed")
	}

	vehicle.Stop(now())
	return nil
}
