package dto

import (
	"route-decision-service/internal/domain"
	"route-decision-service/internal/services"
)

type PointResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Kind string  `json:"kind"`
}

type ListPlacesResponse struct {
	Places []PointResponse `json:"places"`
}

func NewPointResponse(p *domain.Point) PointResponse {
	return PointResponse{
		Name: p.Name,
		Lat:  round(p.Latitude, 6),
		Lon:  round(p.Longitude, 6),
		Kind: string(p.Kind),
	}
}

func NewPointResponses(points []*domain.Point) []PointResponse {
	out := make([]PointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, NewPointResponse(p))
	}
	return out
}

type NearbyPlaceResponse struct {
	PointResponse
	DistanceKm   float64 `json:"distance_km"`
	DistanceText string  `json:"distance_text"`
}

type NearbyPlacesResponse struct {
	Center   PointResponse         `json:"center"`
	RadiusKm float64               `json:"radius_km"`
	Places   []NearbyPlaceResponse `json:"places"`
}

type ReverseResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewNearbyPlacesResponse(center domain.Coordinates, radiusKm float64, places []services.NearbyPlace) NearbyPlacesResponse {
	res := NearbyPlacesResponse{
		Center:   NewPointResponse(domain.NewPoint("center", center.Lat, center.Lon, domain.KindUnknown)),
		RadiusKm: radiusKm,
		Places:   make([]NearbyPlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, NearbyPlaceResponse{
			PointResponse: NewPointResponse(p.Point),
			DistanceKm:    round(p.DistanceKm, 3),
			DistanceText:  services.FormatDistance(p.DistanceKm),
		})
	}
	return res
}
