package services

import (
	"errors"
	"route-decision-service/internal/domain"
)

// ErrNoCandidateRoutes is returned when selection is asked to choose among no routes.
// Callers must abort the planning request rather than proceed without a route.
var ErrNoCandidateRoutes = errors.New("select route: no candidate routes")

// RouteAnalysis is the per-route entry of an AnalysisRecord.
type RouteAnalysis struct {
	Name            string
	Score           float64
	Characteristics domain.CharacteristicSet
	PointCount      int
}

// AnalysisRecord reports the score of every candidate, in the order the
// candidates were considered. It is read-only once returned.
type AnalysisRecord struct {
	entries []RouteAnalysis
	byName  map[string]int
}

func newAnalysisRecord(capacity int) *AnalysisRecord {
	return &AnalysisRecord{
		entries: make([]RouteAnalysis, 0, capacity),
		byName:  make(map[string]int, capacity),
	}
}

// put records e, replacing an existing entry with the same name in place.
func (a *AnalysisRecord) put(e RouteAnalysis) {
	if i, ok := a.byName[e.Name]; ok {
		a.entries[i] = e
		return
	}
	a.byName[e.Name] = len(a.entries)
	a.entries = append(a.entries, e)
}

func (a *AnalysisRecord) Len() int { return len(a.entries) }

// Entries returns the analysis entries in candidate order.
func (a *AnalysisRecord) Entries() []RouteAnalysis {
	out := make([]RouteAnalysis, len(a.entries))
	copy(out, a.entries)
	return out
}

// Get returns the entry for the named route.
func (a *AnalysisRecord) Get(name string) (RouteAnalysis, bool) {
	i, ok := a.byName[name]
	if !ok {
		return RouteAnalysis{}, false
	}
	return a.entries[i], true
}

// ScoreRoute computes the strategy-weighted score of a characteristic set.
//
// The cost term is 1 - cost/costNormalizer and is not clamped: a trip more
// expensive than the normalizer contributes a negative cost term.
func ScoreRoute(c domain.CharacteristicSet, w domain.Weights, costNormalizer float64) float64 {
	timeScore := (1 - c.CongestionLevel) * w.Time
	costScore := (1 - c.CostUSD/costNormalizer) * w.Cost
	safetyScore := c.SafetyLevel * w.Safety
	comfortScore := c.ComfortLevel * w.Comfort

	return timeScore + costScore + safetyScore + comfortScore
}

// SelectBestRoute scores every route and returns the highest-scoring one with
// the full analysis.
//
// Routes are considered in slice order and only a strictly greater score
// replaces the incumbent, so ties go to the earliest route.
func SelectBestRoute(
	routes []*domain.RouteAlternative,
	w domain.Weights,
	costNormalizer float64,
) (*domain.RouteAlternative, *AnalysisRecord, error) {
	if len(routes) == 0 {
		return nil, nil, ErrNoCandidateRoutes
	}

	analysis := newAnalysisRecord(len(routes))

	var best *domain.RouteAlternative
	bestScore := 0.0
	for _, r := range routes {
		score := ScoreRoute(r.Characteristics, w, costNormalizer)

		analysis.put(RouteAnalysis{
			Name:            r.Name,
			Score:           score,
			Characteristics: r.Characteristics,
			PointCount:      len(r.Points),
		})

		if best == nil || score > bestScore {
			best = r
			bestScore = score
		}
	}

	return best, analysis, nil
}
