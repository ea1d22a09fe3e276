package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/observability/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type submissionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	// UpdateStatus must fail with domain.ErrPreconditionFailed when the row
	// no longer matches upd.ExpectedStatus and upd.ExpectedVersion.
	UpdateStatus(ctx context.Context, id uuid.UUID, upd domain.StatusUpdate) (*domain.Submission, error)
}

type transitionRepo interface {
	Create(ctx context.Context, t domain.Transition) (domain.Transition, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Transition, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// transitionNotifier fans a committed transition out to recipients.
type transitionNotifier interface {
	OnTransition(ctx context.Context, evt domain.TransitionEvent) error
}

// eventRecorder feeds lifecycle events to the achievement evaluator.
type eventRecorder interface {
	OnEvent(ctx context.Context, evt domain.Event) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service applies workflow transitions to submissions.
type Service struct {
	submissions  submissionRepo
	transitions  transitionRepo
	tx           txManager
	notifier     transitionNotifier
	achievements eventRecorder
	metrics      *metrics.WorkflowMetrics
	idempotency  *idempotencyCache
	cfg          config.WorkflowConfig
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Workflow service. notifier, achievements and m
// may be nil.
func NewService(
	log *slog.Logger,
	submissions submissionRepo,
	transitions transitionRepo,
	tx txManager,
	notifier transitionNotifier,
	achievements eventRecorder,
	m *metrics.WorkflowMetrics,
	cfg config.WorkflowConfig,
) *Service {
	return &Service{
		submissions:  submissions,
		transitions:  transitions,
		tx:           tx,
		notifier:     notifier,
		achievements: achievements,
		metrics:      m,
		idempotency:  newIdempotencyCache(cfg.IdempotencyWindow),
		cfg:          cfg,
		log:          log.With("service", "workflow"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
