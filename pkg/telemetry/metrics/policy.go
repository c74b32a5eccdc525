package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PolicyMetrics tracks metrics related to rule evaluation.
//
// Metrics:
//   - <ns>_<sub>_rule_evaluations_total: Total rule evaluations by rule and decision
//   - <ns>_<sub>_rule_evaluation_duration_seconds: Rule evaluation duration
type PolicyMetrics struct {
	// Total rule evaluations, labeled by rule name and decision outcome
	evaluationsTotal *prometheus.CounterVec

	// Rule evaluation duration histogram
	evaluationDuration *prometheus.HistogramVec
}

// NewPolicyMetrics creates and registers policy metrics with the provided
// registry.
func NewPolicyMetrics(namespace, subsystem string, registry *prometheus.Registry) *PolicyMetrics {
	pm := &PolicyMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rule_evaluations_total",
				Help:      "Total number of rule evaluations",
			},
			[]string{"rule", "decision"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rule_evaluation_duration_seconds",
				Help:      "Duration of rule evaluation in seconds",
				// Evaluations are in-memory tree walks and should be fast
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"rule"},
		),
	}

	registry.MustRegister(
		pm.evaluationsTotal,
		pm.evaluationDuration,
	)

	return pm
}

// RecordEvaluation records one evaluation of a named rule.
//
// Composed rules (checks of the form rule:other) go through the same
// evaluation entry point, so each named rule involved in a decision records
// its own sample.
func (pm *PolicyMetrics) RecordEvaluation(rule string, allowed bool, duration time.Duration) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	pm.evaluationsTotal.WithLabelValues(rule, decision).Inc()
	pm.evaluationDuration.WithLabelValues(rule).Observe(duration.Seconds())
}
