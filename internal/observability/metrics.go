// Package observability provides Prometheus metrics for tool invocations.
//
// Adapted from a StreamingMetrics-style package built for chat streaming,
// generalized from per-endpoint streaming counters to per-tool invocation
// counters, a duration histogram, and an error counter. Metrics are
// exposed on an optional
// loopback HTTP listener (internal/config's MetricsAddr), since this
// server's primary transport is stdio, not HTTP.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "research_assistant"
	toolSubsystem    = "tool"
)

// ToolMetrics holds the Prometheus instruments for tool invocations.
type ToolMetrics struct {
	InvocationsTotal *prometheus.CounterVec
	DurationSeconds  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
}

// NewToolMetrics constructs and registers the tool metrics against the
// default Prometheus registry. Call once at startup.
func NewToolMetrics() *ToolMetrics {
	return &ToolMetrics{
		InvocationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: toolSubsystem,
				Name:      "invocations_total",
				Help:      "Total number of tool invocations by tool name and outcome",
			},
			[]string{"tool", "status"},
		),

		DurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: toolSubsystem,
				Name:      "duration_seconds",
				Help:      "Tool invocation duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"tool"},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: toolSubsystem,
				Name:      "errors_total",
				Help:      "Total tool invocation errors by tool name and error kind",
			},
			[]string{"tool", "kind"},
		),
	}
}

// Observe records one completed invocation: a status-labeled counter
// increment, a duration sample, and, on failure, an error counter
// increment keyed by the apperr.Kind string.
func (m *ToolMetrics) Observe(tool string, durationSeconds float64, success bool, errorKind string) {
	status := "success"
	if !success {
		status = "error"
	}
	m.InvocationsTotal.WithLabelValues(tool, status).Inc()
	m.DurationSeconds.WithLabelValues(tool).Observe(durationSeconds)
	if !success {
		m.ErrorsTotal.WithLabelValues(tool, errorKind).Inc()
	}
}
