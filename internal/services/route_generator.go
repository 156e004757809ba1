package services

import (
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
)

// RoutePlanner instantiates the catalog's templates into concrete routes.
// It holds only read-only configuration and may be shared across requests.
type RoutePlanner struct {
	catalog   *Catalog
	waypoints *WaypointResolver
	model     CostModel
}

func NewRoutePlanner(catalog *Catalog, waypoints *WaypointResolver, model CostModel) (*RoutePlanner, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, errors.New("new route planner: catalog must be non-empty")
	}
	if waypoints == nil {
		return nil, errors.New("new route planner: waypoint resolver must be non-nil")
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("new route planner: %w", err)
	}

	return &RoutePlanner{catalog: catalog, waypoints: waypoints, model: model}, nil
}

func (p *RoutePlanner) Catalog() *Catalog { return p.catalog }

func (p *RoutePlanner) CostModel() CostModel { return p.model }

// GenerateAlternatives builds one route per catalog template, in catalog order.
//
// Every route starts with start and ends with end (the same pointers); only the
// interior labels of a template are resolved. Characteristics are attached
// before the route is returned.
func (p *RoutePlanner) GenerateAlternatives(start, end *domain.Point, rng RandomSource) []*domain.RouteAlternative {
	routes := make([]*domain.RouteAlternative, 0, p.catalog.Len())

	for _, t := range p.catalog.templates {
		interior := t.Waypoints[1 : len(t.Waypoints)-1]

		points := make([]*domain.Point, 0, len(interior)+2)
		points = append(points, start)
		for _, label := range interior {
			points = append(points, p.waypoints.Resolve(label, start, end, rng))
		}
		points = append(points, end)

		routes = append(routes, &domain.RouteAlternative{
			Name:            t.Name,
			Points:          points,
			Characteristics: ComputeCharacteristics(points, t.Profile, p.model, rng),
		})
	}

	return routes
}
