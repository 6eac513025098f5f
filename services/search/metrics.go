package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sourceCatalog    = "catalog"
	sourceGenerative = "generative"

	outcomeOK         = "ok"
	outcomeError      = "error"
	outcomeTimeout    = "timeout"
	outcomeValidation = "validation"
)

// Metrics records per-half outcomes of combined searches. A nil *Metrics is a no-op.
type Metrics struct {
	subrequests *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	searches    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		subrequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "search",
			Name:      "subrequests_total",
			Help:      "Combined search sub-requests by source and outcome.",
		}, []string{"source", "outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: "search",
			Name:      "subrequest_duration_seconds",
			Help:      "Combined search sub-request latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"source"}),
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "search",
			Name:      "searches_total",
			Help:      "Combined searches by result state.",
		}, []string{"state"}),
	}
}

func (m *Metrics) observe(source, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.subrequests.WithLabelValues(source, outcome).Inc()
	m.latency.WithLabelValues(source).Observe(took.Seconds())
}

func (m *Metrics) searched(state string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(state).Inc()
}
