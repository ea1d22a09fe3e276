// Package comment implements threaded, resolvable feedback on submissions.
package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type commentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Comment, error)
	Create(ctx context.Context, c domain.Comment) (*domain.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string, updatedAt time.Time) (*domain.Comment, error)
	SetResolved(ctx context.Context, id uuid.UUID, resolved bool, by uuid.UUID, at time.Time) (*domain.Comment, error)
	ResolveReplies(ctx context.Context, parentID, by uuid.UUID, at time.Time) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type submissionReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Notify(ctx context.Context, recipients []uuid.UUID, typ domain.NotificationType, title, message string, data domain.Payload) error
}

type eventRecorder interface {
	OnEvent(ctx context.Context, evt domain.Event) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service manages comments on submissions.
type Service struct {
	comments     commentRepo
	submissions  submissionReader
	tx           txManager
	notifier     notifier
	achievements eventRecorder
	maxLength    int
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Comment service. notifier and achievements may be nil.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	submissions submissionReader,
	tx txManager,
	notifier notifier,
	achievements eventRecorder,
	cfg config.WorkflowConfig,
) *Service {
	return &Service{
		comments:     comments,
		submissions:  submissions,
		tx:           tx,
		notifier:     notifier,
		achievements: achievements,
		maxLength:    cfg.MaxFeedbackLength,
		log:          log.With("service", "comment"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
