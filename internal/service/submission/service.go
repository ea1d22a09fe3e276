// Package submission implements draft authoring and read access to
// submissions. Status changes belong to the workflow service.
package submission

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

type submissionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
	Create(ctx context.Context, s domain.Submission) (*domain.Submission, error)
	// UpdateContent must fail with domain.ErrPreconditionFailed when the
	// submission is no longer editable.
	UpdateContent(ctx context.Context, id uuid.UUID, title, content string, updatedAt time.Time) (*domain.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service manages submission drafts and listings.
type Service struct {
	submissions submissionRepo
	cfg         config.WorkflowConfig
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new Submission service.
func NewService(log *slog.Logger, submissions submissionRepo, cfg config.WorkflowConfig) *Service {
	return &Service{
		submissions: submissions,
		cfg:         cfg,
		log:         log.With("service", "submission"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}
