package services

import (
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"strings"

	"github.com/rs/zerolog/log"
)

// Strategy names a caller preference over the four criteria.
type Strategy string

const (
	StrategyFast        Strategy = "fast"
	StrategyEconomical  Strategy = "economical"
	StrategySafe        Strategy = "safe"
	StrategyComfortable Strategy = "comfortable"
	StrategyBalanced    Strategy = "balanced"
)

// DefaultStrategy is used whenever a label is not recognised.
const DefaultStrategy = StrategyFast

// StrategyChoice is the outcome of a strategy lookup.
// Fallback is true when Requested was not recognised and the default was used.
type StrategyChoice struct {
	Requested string
	Strategy  Strategy
	Weights   domain.Weights
	Fallback  bool
}

// StrategyTable maps strategy labels to weights. It is read-only after construction.
type StrategyTable struct {
	order   []Strategy
	weights map[Strategy]domain.Weights
	aliases map[string]Strategy
}

func DefaultStrategyTable() *StrategyTable {
	return &StrategyTable{
		order: []Strategy{
			StrategyFast,
			StrategyEconomical,
			StrategySafe,
			StrategyComfortable,
			StrategyBalanced,
		},
		weights: map[Strategy]domain.Weights{
			StrategyFast:        {Time: 0.5, Cost: 0.2, Safety: 0.15, Comfort: 0.15},
			StrategyEconomical:  {Time: 0.2, Cost: 0.5, Safety: 0.15, Comfort: 0.15},
			StrategySafe:        {Time: 0.15, Cost: 0.2, Safety: 0.5, Comfort: 0.15},
			StrategyComfortable: {Time: 0.15, Cost: 0.15, Safety: 0.2, Comfort: 0.5},
			StrategyBalanced:    {Time: 0.25, Cost: 0.25, Safety: 0.25, Comfort: 0.25},
		},
		// French labels accepted alongside the canonical ones.
		aliases: map[string]Strategy{
			"rapide":     StrategyFast,
			"economique": StrategyEconomical,
			"économique": StrategyEconomical,
			"securise":   StrategySafe,
			"sécurisé":   StrategySafe,
			"confort":    StrategyComfortable,
			"equilibre":  StrategyBalanced,
			"équilibré":  StrategyBalanced,
		},
	}
}

// Strategies lists the canonical strategies in display order.
func (t *StrategyTable) Strategies() []Strategy {
	out := make([]Strategy, len(t.order))
	copy(out, t.order)
	return out
}

// Weights returns the weights of a canonical strategy.
func (t *StrategyTable) Weights(s Strategy) (domain.Weights, bool) {
	w, ok := t.weights[s]
	return w, ok
}

// Resolve maps a canonical or aliased label to its strategy without
// recording anything.
func (t *StrategyTable) Resolve(label string) (Strategy, bool) {
	key := strings.ToLower(strings.TrimSpace(label))

	s := Strategy(key)
	if alias, ok := t.aliases[key]; ok {
		s = alias
	}
	_, ok := t.weights[s]
	return s, ok
}

// Lookup resolves label to weights.
//
// Unknown labels are not an error: they degrade to DefaultStrategy. The
// degradation is reported through StrategyChoice.Fallback, a warning log and
// the route_strategy_fallback_total counter.
func (t *StrategyTable) Lookup(label string) StrategyChoice {
	if s, ok := t.Resolve(label); ok {
		return StrategyChoice{Requested: label, Strategy: s, Weights: t.weights[s]}
	}

	obs.StrategyFallbacks.Inc()
	log.Warn().
		Str("requested", label).
		Str("used", string(DefaultStrategy)).
		Msg("unknown strategy, using default")

	return StrategyChoice{
		Requested: label,
		Strategy:  DefaultStrategy,
		Weights:   t.weights[DefaultStrategy],
		Fallback:  true,
	}
}
