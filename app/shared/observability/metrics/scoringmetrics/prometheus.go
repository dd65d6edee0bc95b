package scoringmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements ScoringMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	computeDurations prometheus.Histogram
	invalidations    prometheus.Counter
}

// NewPrometheusMetrics registers the scoring collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_operation_attempts_total",
			Help: "Service operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_operation_successes_total",
			Help: "Service operations completed without error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_operation_failures_total",
			Help: "Service operations that returned an error.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorekeeper_operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		computeDurations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorekeeper_compute_duration_seconds",
			Help:    "Scoreboard pipeline latency.",
			Buckets: prometheus.DefBuckets,
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_invalidations_detected_total",
			Help: "Multiplier and tee flip invalidations detected after edits.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.computeDurations, m.invalidations)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, _, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, _, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, _, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, _, service string, d time.Duration) {
	m.durations.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordComputeDuration(_ context.Context, _ string, d time.Duration) {
	m.computeDurations.Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordInvalidationsDetected(_ context.Context, _ string, count int) {
	m.invalidations.Add(float64(count))
}
