// Package notification persists per-recipient notifications, pushes them to
// live connections and serves each user's inbox.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/observability/metrics"
	"github.com/heartmarshall/storyflow-backend/internal/realtime"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type notificationRepo interface {
	CreateBatch(ctx context.Context, ns []domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	SetRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, read bool, at time.Time) (int, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// userDirectory resolves reviewer roles to recipients.
type userDirectory interface {
	ListIDsByRole(ctx context.Context, roles ...domain.UserRole) ([]uuid.UUID, error)
}

// livePublisher delivers a frame to the recipient's open connections,
// either directly through the local hub or through the cross-instance relay.
type livePublisher interface {
	Publish(ctx context.Context, msg realtime.Message) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements notification fan-out and the per-user inbox.
type Service struct {
	notifications notificationRepo
	users         userDirectory
	live          livePublisher
	metrics       *metrics.NotificationMetrics
	cfg           config.NotificationConfig
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new Notification service. live and m may be nil.
func NewService(
	log *slog.Logger,
	notifications notificationRepo,
	users userDirectory,
	live livePublisher,
	m *metrics.NotificationMetrics,
	cfg config.NotificationConfig,
) *Service {
	return &Service{
		notifications: notifications,
		users:         users,
		live:          live,
		metrics:       m,
		cfg:           cfg,
		log:           log.With("service", "notification"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}
