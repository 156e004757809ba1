package services

import "route-decision-service/internal/domain"

// seqRNG replays a fixed sequence of draws, cycling when exhausted.
type seqRNG struct {
	vals []float64
	i    int
}

func (s *seqRNG) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func constRNG(v float64) *seqRNG { return &seqRNG{vals: []float64{v}} }

func kinshasaEndpoints() (*domain.Point, *domain.Point) {
	start := domain.NewPoint("Place de la Victoire", -4.33787, 15.30553, domain.KindStart)
	end := domain.NewPoint("Gare Centrale", -4.31600, 15.31300, domain.KindEnd)
	return start, end
}

func newDefaultPlanner() *RoutePlanner {
	p, err := NewRoutePlanner(DefaultCatalog(), NewWaypointResolver(DefaultWaypointTable()), DefaultCostModel())
	if err != nil {
		panic(err)
	}
	return p
}
