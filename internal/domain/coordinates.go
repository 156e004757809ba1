package domain

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether c lies within the WGS84 latitude and longitude ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Haversine returns the great-circle distance in kilometers between a and b.
//
// The spherical approximation is accurate enough for city-scale trips; it is
// not meant to order paths longer than roughly 1000 km.
func Haversine(a, b Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Interpolate returns the point at fraction f of the straight line from a to b,
// with latitude and longitude advanced independently.
func Interpolate(a, b Coordinates, latFrac, lonFrac float64) Coordinates {
	return Coordinates{
		Lat: a.Lat + (b.Lat-a.Lat)*latFrac,
		Lon: a.Lon + (b.Lon-a.Lon)*lonFrac,
	}
}

// Centroid returns the arithmetic mean of the given coordinates.
func Centroid(cs []Coordinates) Coordinates {
	if len(cs) == 0 {
		return Coordinates{}
	}

	var sumLat, sumLon float64
	for _, c := range cs {
		sumLat += c.Lat
		sumLon += c.Lon
	}
	n := float64(len(cs))
	return Coordinates{Lat: sumLat / n, Lon: sumLon / n}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
