package internal

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes used as the "outcome" label
const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "insufficient_selection"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Metrics tracks derivation activity on a private registry
type Metrics struct {
	registry    *prometheus.Registry
	derivations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	selected    prometheus.Gauge
}

// NewMetrics registers the derivation collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "case_evidence",
			Name:      "derivations_total",
			Help:      "Artifact derivations by goal and outcome.",
		}, []string{"goal", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "case_evidence",
			Name:      "derivation_duration_seconds",
			Help:      "Wall time of artifact derivations.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}, []string{"goal"}),
		selected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "case_evidence",
			Name:      "selected_items",
			Help:      "Selected evidence items at the most recent run.",
		}),
	}
	m.registry.MustRegister(m.derivations, m.duration, m.selected)
	return m
}

// ObserveRun records the outcome of one run
func (m *Metrics) ObserveRun(goal Goal, outcome string, elapsed time.Duration, selected int) {
	if m == nil {
		return
	}
	m.derivations.WithLabelValues(string(goal), outcome).Inc()
	m.duration.WithLabelValues(string(goal)).Observe(elapsed.Seconds())
	m.selected.Set(float64(selected))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
