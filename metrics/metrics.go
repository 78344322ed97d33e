package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlanCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_cache_lookups_total",
			Help: "Entitlement lookups by outcome (hit, miss, fallback, anonymous)",
		},
		[]string{"outcome"},
	)

	GuardDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_guard_decisions_total",
			Help: "Route guard terminal decisions",
		},
		[]string{"decision"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "backend_request_duration_seconds",
			Help: "Duration of calls to the backend API",
		},
		[]string{"operation", "status"},
	)
)
