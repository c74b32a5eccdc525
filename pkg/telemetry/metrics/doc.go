// Package metrics provides Prometheus metrics for rule evaluation.
//
// Metrics are registered against a caller-supplied registry so the host
// service stays in control of its metrics endpoint. Attach the collector to a
// rule set with RuleSet.WithMetrics.
package metrics
