package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// NotificationMetrics contains the metrics for notification fan-out,
// the live SSE channel and achievement awards.
type NotificationMetrics struct {
	NotificationsCreated *prometheus.CounterVec // by type
	LiveConnections      prometheus.Gauge       // currently registered connections
	LivePushes           *prometheus.CounterVec // by result: delivered, dropped
	LiveEvictions        prometheus.Counter     // connections removed after a failed push
	AchievementsAwarded  *prometheus.CounterVec // by achievement id

	registry *prometheus.Registry
}

// NewNotificationMetrics creates and registers NotificationMetrics.
func NewNotificationMetrics(registry *prometheus.Registry) (*NotificationMetrics, error) {
	m := &NotificationMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register notification metrics: %w", err)
	}
	return m, nil
}

func (m *NotificationMetrics) initMetrics() {
	m.NotificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyflow_notifications_created_total",
			Help: "Notification rows created by notification type",
		},
		[]string{"type"},
	)

	m.LiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storyflow_live_connections",
		Help: "Open live notification connections on this instance",
	})

	m.LivePushes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyflow_live_pushes_total",
			Help: "Live channel push attempts by result",
		},
		[]string{"result"},
	)

	m.LiveEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storyflow_live_evictions_total",
		Help: "Live connections removed after a failed push",
	})

	m.AchievementsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyflow_achievements_awarded_total",
			Help: "Achievements awarded by achievement id",
		},
		[]string{"achievement"},
	)
}

// RecordCreated counts n notification rows of type t.
func (m *NotificationMetrics) RecordCreated(t string, n int) {
	if m == nil {
		return
	}
	m.NotificationsCreated.WithLabelValues(t).Add(float64(n))
}

// SetLiveConnections sets the open connection gauge.
func (m *NotificationMetrics) SetLiveConnections(n int) {
	if m == nil {
		return
	}
	m.LiveConnections.Set(float64(n))
}

// RecordPush records a push attempt; delivered=false also counts an eviction.
func (m *NotificationMetrics) RecordPush(delivered bool) {
	if m == nil {
		return
	}
	if delivered {
		m.LivePushes.WithLabelValues("delivered").Inc()
		return
	}
	m.LivePushes.WithLabelValues("dropped").Inc()
	m.LiveEvictions.Inc()
}

// RecordAchievement counts an award.
func (m *NotificationMetrics) RecordAchievement(id string) {
	if m == nil {
		return
	}
	m.AchievementsAwarded.WithLabelValues(id).Inc()
}

// Describe implements prometheus.Collector.
func (m *NotificationMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.NotificationsCreated.Describe(ch)
	m.LiveConnections.Describe(ch)
	m.LivePushes.Describe(ch)
	m.LiveEvictions.Describe(ch)
	m.AchievementsAwarded.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *NotificationMetrics) Collect(ch chan<- prometheus.Metric) {
	m.NotificationsCreated.Collect(ch)
	m.LiveConnections.Collect(ch)
	m.LivePushes.Collect(ch)
	m.LiveEvictions.Collect(ch)
	m.AchievementsAwarded.Collect(ch)
}
