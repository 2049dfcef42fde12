package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for screening operations.
type Metrics struct {
	SearchesTriggered  *prometheus.CounterVec
	SelectionsTotal    *prometheus.CounterVec
	ReportFetches      *prometheus.CounterVec
	UpstreamLatency    prometheus.Histogram
	CandidatesPerBatch prometheus.Histogram
}

// New registers and returns screening metrics collectors.
func New() *Metrics {
	return &Metrics{
		SearchesTriggered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amoria_person_searches_total",
			Help: "Total number of person searches triggered, labeled by source",
		}, []string{"source"}),
		SelectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amoria_person_selections_total",
			Help: "Total number of candidate selections, labeled by outcome",
		}, []string{"outcome"}),
		ReportFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amoria_background_report_fetches_total",
			Help: "Total number of background report fetches, labeled by cache result",
		}, []string{"cache"}),
		UpstreamLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "amoria_person_lookup_latency_seconds",
			Help:    "Latency of upstream person lookup calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		CandidatesPerBatch: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "amoria_candidates_per_search",
			Help:    "Distribution of candidate counts per search batch",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50},
		}),
	}
}

func (m *Metrics) IncrementSearches(source string) {
	m.SearchesTriggered.WithLabelValues(source).Inc()
}

func (m *Metrics) IncrementSelections(outcome string) {
	m.SelectionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementReportFetches(cache string) {
	m.ReportFetches.WithLabelValues(cache).Inc()
}

func (m *Metrics) ObserveUpstreamLatency(durationSeconds float64) {
	m.UpstreamLatency.Observe(durationSeconds)
}

func (m *Metrics) ObserveCandidates(count float64) {
	m.CandidatesPerBatch.Observe(count)
}
