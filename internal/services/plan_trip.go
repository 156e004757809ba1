package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"route-decision-service/internal/ports"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type PlanTripRequest struct {
	Start    string
	End      string
	Strategy string
	// Seed makes the synthetic characteristics reproducible. A random seed is
	// chosen when nil and reported back in the decision.
	Seed *int64
}

// TripDecision is the outcome of one planning request.
type TripDecision struct {
	Start        *domain.Point
	End          *domain.Point
	Strategy     StrategyChoice
	Seed         int64
	Chosen       *domain.RouteAlternative
	Alternatives []*domain.RouteAlternative
	Analysis     *AnalysisRecord
}

// TripPlanner resolves place names and runs the generate-score-select pipeline.
// Shared configuration is read-only; every request gets its own RandomSource.
type TripPlanner struct {
	resolver   ports.PlaceResolver
	routes     *RoutePlanner
	strategies *StrategyTable
}

func NewTripPlanner(resolver ports.PlaceResolver, routes *RoutePlanner, strategies *StrategyTable) (*TripPlanner, error) {
	if resolver == nil || routes == nil || strategies == nil {
		return nil, errors.New("new trip planner: resolver, route planner and strategy table are required")
	}
	return &TripPlanner{resolver: resolver, routes: routes, strategies: strategies}, nil
}

func (p *TripPlanner) Strategies() *StrategyTable { return p.strategies }

func (p *TripPlanner) Routes() *RoutePlanner { return p.routes }

// PlanTrip resolves the request's places and selects a route between them.
func (p *TripPlanner) PlanTrip(ctx context.Context, req PlanTripRequest) (_ *TripDecision, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	choice := p.strategies.Lookup(req.Strategy)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		obs.PlansTotal.WithLabelValues(string(choice.Strategy), outcome).Inc()
	}()

	startName := strings.TrimSpace(req.Start)
	endName := strings.TrimSpace(req.End)
	if startName == "" || endName == "" {
		return nil, errors.New("plan trip: start and end must be non-empty")
	}

	var start, end *domain.Point
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pt, err := p.resolver.Resolve(gctx, startName)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		start = pt.WithKind(domain.KindStart)
		return nil
	})
	g.Go(func() error {
		pt, err := p.resolver.Resolve(gctx, endName)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		end = pt.WithKind(domain.KindEnd)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: resolve places: %w", err)
	}

	seed := rand.Int64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	decision, err := p.decide(start, end, choice, NewRandomSource(seed))
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	decision.Seed = seed

	log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Str("start", start.Name).
		Str("end", end.Name).
		Str("strategy", string(choice.Strategy)).
		Bool("strategy_fallback", choice.Fallback).
		Int64("seed", seed).
		Str("chosen", decision.Chosen.Name).
		Msg("trip planned")

	return decision, nil
}

// Decide runs the pipeline on already-resolved points.
func (p *TripPlanner) Decide(start, end *domain.Point, strategy string, rng RandomSource) (*TripDecision, error) {
	return p.decide(start, end, p.strategies.Lookup(strategy), rng)
}

func (p *TripPlanner) decide(start, end *domain.Point, choice StrategyChoice, rng RandomSource) (*TripDecision, error) {
	alternatives := p.routes.GenerateAlternatives(start, end, rng)

	chosen, analysis, err := SelectBestRoute(alternatives, choice.Weights, p.routes.CostModel().CostNormalizerUSD)
	if err != nil {
		return nil, err
	}

	return &TripDecision{
		Start:        start,
		End:          end,
		Strategy:     choice,
		Chosen:       chosen,
		Alternatives: alternatives,
		Analysis:     analysis,
	}, nil
}
