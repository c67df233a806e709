package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module.
type Metrics struct {
	// Provider fetch latencies by source
	EvidenceLatency *prometheus.HistogramVec

	// Evaluation outcomes by approval and risk level
	Outcomes *prometheus.CounterVec

	// Individual check outcomes by kind and status
	CheckOutcomes *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all compliance module metrics
// registered on the default registry.
func New() *Metrics {
	return &Metrics{
		EvidenceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cleargate_compliance_evidence_duration_seconds",
			Help:    "Duration of provider fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "verification", "usage", "sanctions"

		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleargate_compliance_evaluations_total",
			Help: "Total evaluation outcomes by approval and risk level",
		}, []string{"approved", "risk"}),

		CheckOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleargate_compliance_check_outcomes_total",
			Help: "Total individual check outcomes by kind and status",
		}, []string{"kind", "status"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleargate_compliance_evaluate_duration_seconds",
			Help:    "Duration of full evaluation including provider fetches",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveEvidenceLatency records the duration of one provider fetch.
func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	if m != nil {
		m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records an evaluation result.
func (m *Metrics) IncrementOutcome(approved bool, risk string) {
	if m != nil {
		label := "false"
		if approved {
			label = "true"
		}
		m.Outcomes.WithLabelValues(label, risk).Inc()
	}
}

// IncrementCheck records a single check outcome.
func (m *Metrics) IncrementCheck(kind, status string) {
	if m != nil {
		m.CheckOutcomes.WithLabelValues(kind, status).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
