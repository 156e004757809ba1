package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StrategyFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_strategy_fallback_total",
		Help: "Strategy lookups that fell back to the default strategy.",
	})

	WaypointInterpolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_waypoint_interpolations_total",
		Help: "Waypoint labels resolved by interpolation instead of the coordinate table.",
	})

	PlansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_plans_total",
		Help: "Trip planning requests by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_lookups_total",
		Help: "Place resolutions by the source that answered them.",
	}, []string{"source"})
)
