// Package metrics provides Prometheus metrics for the publication workflow,
// notification fan-out and achievement evaluation.
//
// Every Record/Set method is safe to call on a nil receiver, so components
// can run without a registry in tests and tools.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Transition outcomes used as the "outcome" label.
const (
	OutcomeApplied      = "applied"
	OutcomeReplayed     = "replayed"
	OutcomeForbidden    = "forbidden"
	OutcomePrecondition = "precondition_failed"
	OutcomeNotFound     = "not_found"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// WorkflowMetrics contains the metrics for workflow transitions.
type WorkflowMetrics struct {
	TransitionsTotal   *prometheus.CounterVec   // by action, from, to, outcome
	TransitionDuration *prometheus.HistogramVec // by action
	BulkItemsTotal     *prometheus.CounterVec   // by target, outcome
	SideEffectErrors   *prometheus.CounterVec   // by sink

	registry *prometheus.Registry
}

// NewWorkflowMetrics creates and registers WorkflowMetrics.
func NewWorkflowMetrics(registry *prometheus.Registry) (*WorkflowMetrics, error) {
	m := &WorkflowMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register workflow metrics: %w", err)
	}
	return m, nil
}

func (m *WorkflowMetrics) initMetrics() {
	m.TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyflow_workflow_transitions_total",
			Help: "Workflow transition attempts by action, source status, target status and outcome",
		},
		[]string{"action", "from", "to", "outcome"},
	)

	m.TransitionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storyflow_workflow_transition_duration_seconds",
			Help:    "Time spent applying a workflow transition, including the database transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"action"},
	)

	m.BulkItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyflow_workflow_bulk_items_total",
			Help: "Items processed by admin bulk status changes by target status and outcome",
		},
		[]string{"target", "outcome"},
	)

	m.SideEffectErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyflow_workflow_side_effect_errors_total",
			Help: "Failures of post-commit side effects (notifications, achievements) by sink",
		},
		[]string{"sink"},
	)
}

// RecordTransition records one ApplyTransition attempt.
// from and to may be empty when the attempt failed before the load.
func (m *WorkflowMetrics) RecordTransition(action, from, to, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(action, from, to, outcome).Inc()
	m.TransitionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordBulkItem records one item of a bulk status change.
func (m *WorkflowMetrics) RecordBulkItem(target, outcome string) {
	if m == nil {
		return
	}
	m.BulkItemsTotal.WithLabelValues(target, outcome).Inc()
}

// RecordSideEffectError counts a swallowed post-commit failure.
func (m *WorkflowMetrics) RecordSideEffectError(sink string) {
	if m == nil {
		return
	}
	m.SideEffectErrors.WithLabelValues(sink).Inc()
}

// Describe implements prometheus.Collector.
func (m *WorkflowMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.TransitionsTotal.Describe(ch)
	m.TransitionDuration.Describe(ch)
	m.BulkItemsTotal.Describe(ch)
	m.SideEffectErrors.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *WorkflowMetrics) Collect(ch chan<- prometheus.Metric) {
	m.TransitionsTotal.Collect(ch)
	m.TransitionDuration.Collect(ch)
	m.BulkItemsTotal.Collect(ch)
	m.SideEffectErrors.Collect(ch)
}
