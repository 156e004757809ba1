package services

import (
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
	"strings"
)

// RouteTemplate is a named route archetype.
//
// Waypoints lists place labels from start to end. The first and last labels
// are descriptive only: generated routes always use the caller's start and end
// points. Profile biases the synthetic quality levels, never the geometry.
type RouteTemplate struct {
	ID        string
	Name      string
	Waypoints []string
	Profile   domain.Weights
}

// Catalog is an ordered, read-only list of route templates.
// Iteration order is the tie-break order used by route selection.
type Catalog struct {
	templates []RouteTemplate
}

func NewCatalog(templates ...RouteTemplate) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, errors.New("new catalog: at least one template is required")
	}

	ids := make(map[string]struct{}, len(templates))
	names := make(map[string]struct{}, len(templates))
	out := make([]RouteTemplate, 0, len(templates))
	for i, t := range templates {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("new catalog: template #%d: id must be non-empty", i+1)
		}
		if _, ok := ids[id]; ok {
			return nil, fmt.Errorf("new catalog: duplicate template id %q", id)
		}
		ids[id] = struct{}{}

		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("new catalog: template %q: name must be non-empty", id)
		}
		if _, ok := names[t.Name]; ok {
			return nil, fmt.Errorf("new catalog: duplicate template name %q", t.Name)
		}
		names[t.Name] = struct{}{}

		if len(t.Waypoints) < 2 {
			return nil, fmt.Errorf("new catalog: template %q: need at least 2 waypoints, got %d", id, len(t.Waypoints))
		}
		if !t.Profile.Valid() {
			return nil, fmt.Errorf("new catalog: template %q: profile weights must be within [0, 1]", id)
		}

		wps := make([]string, len(t.Waypoints))
		copy(wps, t.Waypoints)
		out = append(out, RouteTemplate{ID: id, Name: t.Name, Waypoints: wps, Profile: t.Profile})
	}

	return &Catalog{templates: out}, nil
}

func (c *Catalog) Len() int { return len(c.templates) }

// Templates returns the templates in catalog order.
func (c *Catalog) Templates() []RouteTemplate {
	out := make([]RouteTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// DefaultCatalog returns the five Kinshasa route archetypes between
// Place de la Victoire and Gare Centrale.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		RouteTemplate{
			ID:   "main",
			Name: "Main Route - Boulevard du 30 Juin",
			Waypoints: []string{
				"Place de la Victoire",
				"Tour de l'Échangeur",
				"Boulevard du 30 Juin",
				"Avenue de la Justice",
				"Palais du Peuple",
				"Gare Centrale",
			},
			Profile: domain.Weights{Time: 0.8, Cost: 0.6, Safety: 0.7, Comfort: 0.8},
		},
		RouteTemplate{
			ID:   "secondary",
			Name: "Secondary Route - Avenue des Aviateurs",
			Waypoints: []string{
				"Place de la Victoire",
				"Carrefour Forescom",
				"Avenue des Aviateurs",
				"Place du Marché",
				"Marché Central",
				"Gare Centrale",
			},
			Profile: domain.Weights{Time: 0.6, Cost: 0.8, Safety: 0.8, Comfort: 0.6},
		},
		RouteTemplate{
			ID:   "scenic",
			Name: "Scenic Route - City Centre",
			Waypoints: []string{
				"Place de la Victoire",
				"Stade des Martyrs",
				"Avenue de la Libération",
				"Hôpital Général de Kinshasa",
				"Immeuble Sozacom",
				"Gare Centrale",
			},
			Profile: domain.Weights{Time: 0.4, Cost: 0.7, Safety: 0.9, Comfort: 0.9},
		},
		RouteTemplate{
			ID:   "express",
			Name: "Express Route - Voie Express",
			Waypoints: []string{
				"Place de la Victoire",
				"Boulevard du 30 Juin",
				"Avenue de la Justice",
				"Avenue des Aviateurs",
				"Palais du Peuple",
				"Gare Centrale",
			},
			Profile: domain.Weights{Time: 0.9, Cost: 0.5, Safety: 0.6, Comfort: 0.7},
		},
		RouteTemplate{
			ID:   "economical",
			Name: "Economical Route - Short Itinerary",
			Waypoints: []string{
				"Place de la Victoire",
				"Tour de l'Échangeur",
				"Avenue de la Libération",
				"Hôpital Général de Kinshasa",
				"Marché Central",
				"Gare Centrale",
			},
			Profile: domain.Weights{Time: 0.5, Cost: 0.9, Safety: 0.7, Comfort: 0.5},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}
