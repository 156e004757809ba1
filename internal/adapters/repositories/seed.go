package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/ports"
	"strings"
)

type PlaceSeed struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Kind string  `json:"kind,omitempty"`
}

// LoadSeeds reads and validates a JSON array of places.
func LoadSeeds(jsonPath string) ([]*domain.Point, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seeds: parse json: %w", err)
	}

	places := make([]*domain.Point, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("load seeds: item at index %d: name cannot be empty", i+1)
		}
		if !(domain.Coordinates{Lat: item.Lat, Lon: item.Lon}).Valid() {
			return nil, fmt.Errorf("load seeds: %q: coordinates out of range (%v, %v)", name, item.Lat, item.Lon)
		}
		places = append(places, domain.NewPoint(name, item.Lat, item.Lon, domain.ParsePointKind(item.Kind)))
	}

	return places, nil
}

// SeedFromJSON populates repo with the places listed in a JSON file.
func SeedFromJSON(ctx context.Context, repo ports.PlaceRepository, jsonPath string) error {
	places, err := LoadSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: %w", err)
	}

	if err := repo.UpsertPlaces(ctx, places); err != nil {
		return fmt.Errorf("seed places: %w", err)
	}

	return nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// likePattern builds a LIKE pattern matching names that contain query.
// The escape character is a backslash.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(nameKey(query)) + "%"
}
