// Package report renders a trip decision as a standalone HTML page with a
// map of every alternative route.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/services"
	"strings"
	"time"
)

//go:embed templates/trip.html
var files embed.FS

var page = template.Must(template.New("trip.html").Funcs(template.FuncMap{
	"distance": services.FormatDistance,
	"duration": services.FormatDuration,
	"percent":  percent,
	"inc":      func(i int) int { return i + 1 },
}).ParseFS(files, "templates/trip.html"))

// Map canvas size in SVG user units.
const (
	mapWidth   = 720.0
	mapHeight  = 440.0
	mapPadding = 30.0
)

var routeColors = []string{"#1f77b4", "#9467bd", "#ff7f0e", "#2ca02c", "#d62728"}

type mapRoute struct {
	Name   string
	Color  string
	Points string
	Width  float64
	Chosen bool
}

type mapMarker struct {
	X, Y  float64
	Label string
	Color string
}

type routeMap struct {
	Width, Height float64
	Routes        []mapRoute
	Markers       []mapMarker
}

type view struct {
	Plan        dto.PlanResponse
	GeneratedAt string
	Map         routeMap
	AvgSpeedKmh float64
}

// Render writes the HTML report for plan to w.
func Render(w io.Writer, plan dto.PlanResponse, generatedAt time.Time) error {
	v := view{
		Plan:        plan,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		Map:         buildMap(plan),
	}
	if sim := plan.Simulation; sim != nil && sim.PlannedMinutes > 0 {
		v.AvgSpeedKmh = sim.DistanceKm / (sim.PlannedMinutes / 60)
	}

	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// buildMap projects every alternative onto the canvas with an
// equirectangular projection scaled to the bounding box of all points.
func buildMap(plan dto.PlanResponse) routeMap {
	m := routeMap{Width: mapWidth, Height: mapHeight}

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	for _, a := range plan.Analysis {
		for _, p := range a.Points {
			minLat, maxLat = math.Min(minLat, p.Lat), math.Max(maxLat, p.Lat)
			minLon, maxLon = math.Min(minLon, p.Lon), math.Max(maxLon, p.Lon)
		}
	}
	if math.IsInf(minLat, 1) {
		return m
	}

	latSpan := math.Max(maxLat-minLat, 1e-6)
	lonSpan := math.Max(maxLon-minLon, 1e-6)
	project := func(p dto.PointResponse) (float64, float64) {
		x := mapPadding + (p.Lon-minLon)/lonSpan*(mapWidth-2*mapPadding)
		y := mapPadding + (maxLat-p.Lat)/latSpan*(mapHeight-2*mapPadding)
		return math.Round(x*10) / 10, math.Round(y*10) / 10
	}

	var chosen *mapRoute
	for i, a := range plan.Analysis {
		coords := make([]string, 0, len(a.Points))
		for _, p := range a.Points {
			x, y := project(p)
			coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		r := mapRoute{
			Name:   a.Name,
			Color:  routeColors[i%len(routeColors)],
			Points: strings.Join(coords, " "),
			Width:  3,
			Chosen: a.Chosen,
		}
		if a.Chosen {
			r.Width = 7
			chosen = &r
			continue
		}
		m.Routes = append(m.Routes, r)
	}
	// drawn last so it stays on top
	if chosen != nil {
		m.Routes = append(m.Routes, *chosen)
	}

	for _, mk := range []struct {
		p     dto.PointResponse
		color string
	}{{plan.Start, "#2ca02c"}, {plan.End, "#d62728"}} {
		x, y := project(mk.p)
		m.Markers = append(m.Markers, mapMarker{X: x, Y: y, Label: mk.p.Name, Color: mk.color})
	}

	return m
}

// percent maps v onto 0..100 relative to full, clamped.
func percent(v, full float64) float64 {
	if full <= 0 || v <= 0 {
		return 0
	}
	return math.Min(v/full*100, 100)
}
