package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for verification transitions.
type Metrics struct {
	Transitions       *prometheus.CounterVec
	RejectedCommands  *prometheus.CounterVec
	TransitionLatency prometheus.Histogram
}

// New registers and returns verification metrics collectors.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amoria_verification_transitions_total",
			Help: "Total number of verification state transitions, labeled by target status",
		}, []string{"status"}),
		RejectedCommands: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amoria_verification_rejections_total",
			Help: "Total number of refused verification commands, labeled by reason",
		}, []string{"reason"}),
		TransitionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "amoria_verification_transition_latency_seconds",
			Help:    "Latency of verification transitions in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementTransitions(status string) {
	m.Transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementRejections(reason string) {
	m.RejectedCommands.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveTransitionLatency(durationSeconds float64) {
	m.TransitionLatency.Observe(durationSeconds)
}
