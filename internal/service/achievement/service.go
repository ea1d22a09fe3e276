// Package achievement turns lifecycle events into per-user counters and
// awards catalog achievements when thresholds are crossed.
package achievement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/observability/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type statsRepo interface {
	MarkProcessed(ctx context.Context, evt domain.Event, at time.Time) (bool, error)
	IncrementCounter(ctx context.Context, userID uuid.UUID, counter domain.StatCounter, delta int, at time.Time) (int, error)
	GetStats(ctx context.Context, userID uuid.UUID) (map[domain.StatCounter]int, error)
	Award(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error)
	ListAwards(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Notify(ctx context.Context, recipients []uuid.UUID, typ domain.NotificationType, title, message string, data domain.Payload) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the achievement evaluator.
type Service struct {
	stats    statsRepo
	tx       txManager
	notifier notifier
	metrics  *metrics.NotificationMetrics
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new Achievement service. notifier and m may be nil.
func NewService(
	log *slog.Logger,
	stats statsRepo,
	tx txManager,
	notifier notifier,
	m *metrics.NotificationMetrics,
) *Service {
	return &Service{
		stats:    stats,
		tx:       tx,
		notifier: notifier,
		metrics:  m,
		log:      log.With("service", "achievement"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}
