// Package metrics provides Prometheus metrics for plan overrides.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the billing counters.
type Metrics struct {
	PlanGrants   *prometheus.CounterVec
	GrantRefused *prometheus.CounterVec
}

// New registers the billing metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PlanGrants: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amoria_plan_grants_total",
				Help: "Total number of plans granted by operators, by plan name.",
			},
			[]string{"plan"},
		),
		GrantRefused: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amoria_plan_grant_refusals_total",
				Help: "Total number of refused plan grants, by reason.",
			},
			[]string{"reason"},
		),
	}
}
