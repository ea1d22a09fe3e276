package submission

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/permission"
)

// CreateDraft stores a new DRAFT owned by the caller. Only roles that may
// submit their own work can create drafts.
func (s *Service) CreateDraft(ctx context.Context, input CreateInput) (*domain.Submission, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !permission.HasAction(actor.Role, domain.ActionSubmit) {
		return nil, domain.ErrForbidden
	}

	title, content, source, err := input.parse(actor.Role, s.cfg.MaxContentLength)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.submissions.Create(ctx, domain.Submission{
		ID:        uuid.New(),
		AuthorID:  actor.ID,
		Source:    source,
		Title:     title,
		Content:   content,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.log.InfoContext(ctx, "draft created",
		slog.String("submission_id", created.ID.String()),
		slog.String("author_id", actor.ID.String()),
	)
	return created, nil
}

// UpdateDraft edits title or content while the submission is DRAFT or
// NEEDS_REVISION. Only the author may edit.
func (s *Service) UpdateDraft(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Submission, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.validate(s.cfg.MaxContentLength); err != nil {
		return nil, err
	}

	sub, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !sub.IsAuthor(actor.ID) {
		return nil, domain.ErrForbidden
	}
	if !sub.Status.IsEditable() {
		return nil, domain.NewPreconditionError("submission cannot be edited in status %s", sub.Status)
	}

	title, content := sub.Title, sub.Content
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		content = *input.Content
	}

	updated, err := s.submissions.UpdateContent(ctx, id, title, content, s.now())
	if err != nil {
		return nil, fmt.Errorf("update submission content: %w", err)
	}
	return updated, nil
}

// Get returns a submission the caller may view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.visible(ctx, actor, id)
}

// ListQueue returns the caller's review queue, optionally narrowed to one
// status of that queue.
func (s *Service) ListQueue(ctx context.Context, input QueueInput) ([]domain.Submission, int, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	statuses := permission.ReviewQueueStatuses(actor.Role)
	if len(statuses) == 0 {
		return nil, 0, domain.ErrForbidden
	}

	status, err := input.parseStatus()
	if err != nil {
		return nil, 0, err
	}
	if status != nil {
		if !slices.Contains(statuses, *status) {
			return nil, 0, domain.NewValidationError("status", "not part of your review queue")
		}
		statuses = []domain.SubmissionStatus{*status}
	}

	subs, total, err := s.submissions.List(ctx, domain.SubmissionFilter{
		Statuses: statuses,
		Search:   strings.TrimSpace(input.Search),
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list review queue: %w", err)
	}
	return subs, total, nil
}

// ListMine returns the caller's own submissions in any status.
func (s *Service) ListMine(ctx context.Context, limit, offset int) ([]domain.Submission, int, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	subs, total, err := s.submissions.List(ctx, domain.SubmissionFilter{
		AuthorID: &actor.ID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list own submissions: %w", err)
	}
	return subs, total, nil
}

// Delete removes a submission. Authors may delete their own drafts; admins
// may delete anything.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return err
	}

	sub, err := s.visible(ctx, actor, id)
	if err != nil {
		return err
	}

	switch {
	case permission.CanDeleteAnySubmission(actor.Role):
	case sub.IsAuthor(actor.ID):
		if sub.Status != domain.StatusDraft {
			return domain.NewPreconditionError("only drafts can be deleted")
		}
	default:
		return domain.ErrForbidden
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}

	s.log.InfoContext(ctx, "submission deleted",
		slog.String("submission_id", id.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.String("status", string(sub.Status)),
	)
	return nil
}

// visible loads a submission and hides it when actor may not view it.
func (s *Service) visible(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !permission.CanView(actor, sub) {
		return nil, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	return sub, nil
}
