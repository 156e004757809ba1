package dto

import (
	"route-decision-service/internal/domain"
	"route-decision-service/internal/services"
	"time"
)

type PlanRequest struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Strategy string `json:"strategy"`
	Seed     *int64 `json:"seed"`
	Simulate bool   `json:"simulate"`
	Traffic  string `json:"traffic"`
}

type WeightsResponse struct {
	Time    float64 `json:"time"`
	Cost    float64 `json:"cost"`
	Safety  float64 `json:"safety"`
	Comfort float64 `json:"comfort"`
}

type StrategyResponse struct {
	Requested string          `json:"requested,omitempty"`
	Name      string          `json:"name"`
	Fallback  bool            `json:"fallback"`
	Weights   WeightsResponse `json:"weights"`
}

type ListStrategiesResponse struct {
	Default    string             `json:"default"`
	Strategies []StrategyResponse `json:"strategies"`
}

type CharacteristicsResponse struct {
	DistanceKm     float64 `json:"distance_km"`
	TimeMin        float64 `json:"time_min"`
	CostUSD        float64 `json:"cost_usd"`
	Congestion     float64 `json:"congestion"`
	Safety         float64 `json:"safety"`
	Comfort        float64 `json:"comfort"`
	CompositeScore float64 `json:"composite_score"`
	DistanceText   string  `json:"distance_text"`
	DurationText   string  `json:"duration_text"`
}

type RouteResponse struct {
	Name            string                  `json:"name"`
	Points          []PointResponse         `json:"points"`
	Characteristics CharacteristicsResponse `json:"characteristics"`
}

type AnalysisResponse struct {
	Name            string                  `json:"name"`
	Score           float64                 `json:"score"`
	PointCount      int                     `json:"point_count"`
	Chosen          bool                    `json:"chosen"`
	Characteristics CharacteristicsResponse `json:"characteristics"`
	Points          []PointResponse         `json:"points"`
}

type SegmentResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	DistanceKm   float64         `json:"distance_km"`
	DurationMin  float64         `json:"duration_min"`
	Intermediate []PointResponse `json:"intermediate,omitempty"`
}

type SimulationResponse struct {
	Status         string            `json:"status"`
	History        []string          `json:"history"`
	Segments       []SegmentResponse `json:"segments"`
	DistanceKm     float64           `json:"distance_km"`
	PlannedMinutes float64           `json:"planned_minutes"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	FinishedAt     *time.Time        `json:"finished_at,omitempty"`
}

type PlanResponse struct {
	Start      PointResponse       `json:"start"`
	End        PointResponse       `json:"end"`
	Center     PointResponse       `json:"center"`
	Strategy   StrategyResponse    `json:"strategy"`
	Seed       int64               `json:"seed"`
	Chosen     RouteResponse       `json:"chosen"`
	Analysis   []AnalysisResponse  `json:"analysis"`
	Simulation *SimulationResponse `json:"simulation,omitempty"`
}

func NewWeightsResponse(w domain.Weights) WeightsResponse {
	return WeightsResponse{Time: w.Time, Cost: w.Cost, Safety: w.Safety, Comfort: w.Comfort}
}

func NewStrategyResponse(c services.StrategyChoice) StrategyResponse {
	return StrategyResponse{
		Requested: c.Requested,
		Name:      string(c.Strategy),
		Fallback:  c.Fallback,
		Weights:   NewWeightsResponse(c.Weights),
	}
}

func NewCharacteristicsResponse(c domain.CharacteristicSet) CharacteristicsResponse {
	return CharacteristicsResponse{
		DistanceKm:     round(c.DistanceKm, 2),
		TimeMin:        round(c.TimeMin, 1),
		CostUSD:        round(c.CostUSD, 2),
		Congestion:     round(c.CongestionLevel, 2),
		Safety:         round(c.SafetyLevel, 2),
		Comfort:        round(c.ComfortLevel, 2),
		CompositeScore: round(c.CompositeScore, 2),
		DistanceText:   services.FormatDistance(c.DistanceKm),
		DurationText:   services.FormatDuration(c.TimeMin),
	}
}

// NewPlanResponse maps a decision, and optionally its simulated execution,
// to the wire format. Scores are rounded to three decimals.
func NewPlanResponse(d *services.TripDecision, v *domain.Vehicle) PlanResponse {
	coords := make([]domain.Coordinates, 0, len(d.Chosen.Points))
	for _, p := range d.Chosen.Points {
		coords = append(coords, p.Coordinates())
	}
	center := domain.Centroid(coords)

	res := PlanResponse{
		Start:    NewPointResponse(d.Start),
		End:      NewPointResponse(d.End),
		Center:   NewPointResponse(domain.NewPoint("center", center.Lat, center.Lon, domain.KindUnknown)),
		Strategy: NewStrategyResponse(d.Strategy),
		Seed:     d.Seed,
		Chosen: RouteResponse{
			Name:            d.Chosen.Name,
			Points:          NewPointResponses(d.Chosen.Points),
			Characteristics: NewCharacteristicsResponse(d.Chosen.Characteristics),
		},
	}

	points := make(map[string][]PointResponse, len(d.Alternatives))
	for _, alt := range d.Alternatives {
		points[alt.Name] = NewPointResponses(alt.Points)
	}

	entries := d.Analysis.Entries()
	res.Analysis = make([]AnalysisResponse, 0, len(entries))
	for _, e := range entries {
		res.Analysis = append(res.Analysis, AnalysisResponse{
			Name:            e.Name,
			Score:           round(e.Score, 3),
			PointCount:      e.PointCount,
			Chosen:          e.Name == d.Chosen.Name,
			Characteristics: NewCharacteristicsResponse(e.Characteristics),
			Points:          points[e.Name],
		})
	}

	if v != nil {
		sim := &SimulationResponse{
			Status:         string(v.Status),
			History:        v.History,
			Segments:       make([]SegmentResponse, 0, len(v.Segments)),
			DistanceKm:     round(v.DistanceKm(), 2),
			PlannedMinutes: round(v.PlannedMinutes(), 1),
			StartedAt:      v.StartedAt,
			FinishedAt:     v.FinishedAt,
		}
		for _, s := range v.Segments {
			sim.Segments = append(sim.Segments, SegmentResponse{
				From:         s.From.Name,
				To:           s.To.Name,
				DistanceKm:   round(s.DistanceKm, 3),
				DurationMin:  round(s.DurationMin, 1),
				Intermediate: NewPointResponses(s.Intermediate),
			})
		}
		res.Simulation = sim
	}

	return res
}
