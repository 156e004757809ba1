package services

import (
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
)

// CostModel holds the trip constants used to derive time and cost.
type CostModel struct {
	AverageSpeedKmh   float64
	FuelLitersPerKm   float64
	FuelPriceUSD      float64
	CostNormalizerUSD float64 // assumed maximum plausible trip cost
}

// DefaultCostModel matches Kinshasa traffic: 25 km/h, 7 L/100km, 1.5 USD/L.
func DefaultCostModel() CostModel {
	return CostModel{
		AverageSpeedKmh:   25,
		FuelLitersPerKm:   0.07,
		FuelPriceUSD:      1.5,
		CostNormalizerUSD: 5,
	}
}

func (m CostModel) Validate() error {
	if m.AverageSpeedKmh <= 0 {
		return fmt.Errorf("cost model: average speed must be positive, got %v", m.AverageSpeedKmh)
	}
	if m.FuelLitersPerKm < 0 || m.FuelPriceUSD < 0 {
		return errors.New("cost model: fuel consumption and price must be non-negative")
	}
	if m.CostNormalizerUSD <= 0 {
		return fmt.Errorf("cost model: cost normalizer must be positive, got %v", m.CostNormalizerUSD)
	}
	return nil
}

// TravelMinutes converts a distance into minutes at the average speed.
func (m CostModel) TravelMinutes(distanceKm float64) float64 {
	return distanceKm / m.AverageSpeedKmh * 60
}

// FuelCostUSD returns the fuel cost of driving distanceKm.
func (m CostModel) FuelCostUSD(distanceKm float64) float64 {
	return distanceKm * m.FuelLitersPerKm * m.FuelPriceUSD
}

// Sampling ranges for the synthetic quality levels, before profile weighting.
var (
	congestionRange = [2]float64{0.3, 0.9}
	safetyRange     = [2]float64{0.6, 0.95}
	comfortRange    = [2]float64{0.5, 0.9}
)

// ComputeCharacteristics derives the characteristic set of a resolved route.
//
// Distance, time and cost are deterministic. The congestion, safety and
// comfort levels are synthetic: a uniform draw scaled by the template profile,
// consumed from rng in that order.
func ComputeCharacteristics(
	points []*domain.Point,
	profile domain.Weights,
	model CostModel,
	rng RandomSource,
) domain.CharacteristicSet {
	distanceKm := domain.PathDistance(points)

	return domain.CharacteristicSet{
		DistanceKm:      distanceKm,
		TimeMin:         model.TravelMinutes(distanceKm),
		CostUSD:         model.FuelCostUSD(distanceKm),
		CongestionLevel: uniform(rng, congestionRange[0], congestionRange[1]) * profile.Time,
		SafetyLevel:     uniform(rng, safetyRange[0], safetyRange[1]) * profile.Safety,
		ComfortLevel:    uniform(rng, comfortRange[0], comfortRange[1]) * profile.Comfort,
		CompositeScore:  profile.Mean(),
	}
}
