package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/observability/metrics"
	"github.com/heartmarshall/storyflow-backend/internal/permission"
)

// TransitionResult is the outcome of an accepted transition.
type TransitionResult struct {
	Submission *domain.Submission
	Transition domain.Transition
}

// ApplyTransition validates and applies one workflow action to a submission.
//
// Checks run in a fixed order: input, role gate, load, visibility and
// authorship, status precondition, action-specific requirements. The role
// gate runs before the load so an actor whose role has no such action learns
// nothing about the submission.
//
// The status update and the transition record are written in one
// transaction. The update is conditional on the loaded status and version;
// a concurrent writer makes it fail with domain.ErrPreconditionFailed.
// Notifications and achievements run after commit and never fail the call.
func (s *Service) ApplyTransition(ctx context.Context, input TransitionInput) (res *TransitionResult, err error) {
	start := time.Now()
	var (
		from, to domain.SubmissionStatus
		replayed bool
	)
	defer func() {
		outcome := outcomeFor(err)
		if replayed {
			outcome = metrics.OutcomeReplayed
		}
		action := input.Action
		if !domain.WorkflowAction(action).IsValid() {
			action = "unknown"
		}
		s.metrics.RecordTransition(action, string(from), string(to), outcome, time.Since(start))
	}()

	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	in, err := input.parse(s.cfg.MaxFeedbackLength)
	if err != nil {
		return nil, err
	}

	if !permission.HasAction(actor.Role, in.action) {
		return nil, domain.ErrForbidden
	}

	if cached, ok := s.idempotency.get(actor.ID, input); ok {
		from, to, replayed = cached.Transition.FromStatus, cached.Transition.ToStatus, true
		return cached, nil
	}

	sub, err := s.submissions.GetByID(ctx, input.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	from = sub.Status

	if !permission.CanView(actor, sub) {
		return nil, domain.ErrForbidden
	}

	rule, ok := permission.Lookup(actor.Role, sub.Status, in.action)
	if !ok {
		return nil, domain.NewPreconditionError("%s is not allowed in the current status", in.action)
	}
	if rule.AuthorOnly && !sub.IsAuthor(actor.ID) {
		return nil, domain.ErrForbidden
	}
	if input.ExpectedVersion != nil && *input.ExpectedVersion != sub.Version {
		return nil, domain.NewPreconditionError("submission was modified (version %d, expected %d)", sub.Version, *input.ExpectedVersion)
	}

	if err := checkActionRequirements(rule, in, sub); err != nil {
		return nil, err
	}

	now := s.now()
	upd := buildStatusUpdate(rule, in, sub, actor, now)
	meta := &domain.TransitionMetadata{
		BookDecision:      upd.BookDecision,
		PublicationFormat: upd.PublicationFormat,
	}
	if upd.IncrementRevision {
		meta.RevisionNo = sub.RevisionNo + 1
	}
	if meta.IsZero() {
		meta = nil
	}

	var (
		updated *domain.Submission
		record  domain.Transition
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.submissions.UpdateStatus(txCtx, sub.ID, upd)
		if txErr != nil {
			return fmt.Errorf("update submission status: %w", txErr)
		}

		record, txErr = s.transitions.Create(txCtx, domain.Transition{
			ID:            uuid.New(),
			SubmissionID:  sub.ID,
			FromStatus:    sub.Status,
			ToStatus:      rule.To,
			Action:        in.action,
			Comment:       in.feedback,
			PerformedByID: actor.ID,
			Metadata:      meta,
			CreatedAt:     now,
		})
		if txErr != nil {
			return fmt.Errorf("create transition: %w", txErr)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPreconditionFailed) {
			// A concurrent retry with the same key may have won the race.
			if cached, ok := s.idempotency.get(actor.ID, input); ok {
				to, replayed = cached.Transition.ToStatus, true
				return cached, nil
			}
		}
		return nil, err
	}
	to = rule.To

	res = &TransitionResult{Submission: updated, Transition: record}
	s.idempotency.put(actor.ID, input, res)

	s.log.InfoContext(ctx, "transition applied",
		slog.String("submission_id", sub.ID.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.String("role", string(actor.Role)),
		slog.String("action", string(in.action)),
		slog.String("from", string(sub.Status)),
		slog.String("to", string(rule.To)),
	)

	s.dispatch(ctx, domain.TransitionEvent{Submission: *updated, Transition: record, Actor: actor})

	return res, nil
}

func checkActionRequirements(rule permission.Rule, in parsedTransition, sub *domain.Submission) error {
	if rule.RequiresFeedback && in.feedback == nil {
		return domain.NewValidationError("feedback", "required for "+string(rule.Action))
	}

	switch {
	case rule.Action == domain.ActionFormatDecision:
		if in.bookDecision == nil {
			return domain.NewValidationError("book_decision", "required")
		}
	case rule.Action == domain.ActionApprove && rule.Role == domain.RoleBookManager:
		if in.publicationFormat == nil {
			return domain.NewValidationError("publication_format", "required")
		}
		if sub.PublicationFormat != nil {
			return domain.NewPreconditionError("publication format already set")
		}
	case rule.Action == domain.ActionPublish:
		if sub.PublicationFormat == nil {
			return domain.NewPreconditionError("publication format not set")
		}
	}
	return nil
}

func buildStatusUpdate(rule permission.Rule, in parsedTransition, sub *domain.Submission, actor domain.Actor, now time.Time) domain.StatusUpdate {
	upd := domain.StatusUpdate{
		ExpectedStatus:    sub.Status,
		ExpectedVersion:   sub.Version,
		NewStatus:         rule.To,
		ReviewNotes:       in.feedback,
		IncrementRevision: rule.To == domain.StatusNeedsRevision,
		UpdatedAt:         now,
	}

	if rule.Action == domain.ActionFormatDecision {
		upd.BookDecision = in.bookDecision
	}
	if rule.Action == domain.ActionApprove && rule.Role == domain.RoleBookManager {
		upd.PublicationFormat = in.publicationFormat
	}
	if rule.To == domain.StatusPublished {
		upd.PublishedAt = &now
	}

	if !rule.AuthorOnly {
		id := actor.ID
		switch actor.Role {
		case domain.RoleStoryManager:
			upd.StoryManagerID = &id
		case domain.RoleBookManager:
			upd.BookManagerID = &id
		case domain.RoleContentAdmin, domain.RoleAdmin:
			upd.ContentAdminID = &id
		}
	}

	return upd
}

// dispatch runs post-commit side effects. Failures are logged and counted.
func (s *Service) dispatch(ctx context.Context, evt domain.TransitionEvent) {
	ctx = context.WithoutCancel(ctx)

	if s.notifier != nil {
		if err := s.notifier.OnTransition(ctx, evt); err != nil {
			s.metrics.RecordSideEffectError("notification")
			s.log.WarnContext(ctx, "transition notification failed",
				slog.String("submission_id", evt.Submission.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.achievements == nil {
		return
	}
	for _, e := range lifecycleEvents(evt) {
		if err := s.achievements.OnEvent(ctx, e); err != nil {
			s.metrics.RecordSideEffectError("achievement")
			s.log.WarnContext(ctx, "achievement evaluation failed",
				slog.String("user_id", e.UserID.String()),
				slog.String("event", string(e.Type)),
				slog.String("error", err.Error()),
			)
		}
	}
}

// lifecycleEvents maps a committed transition to achievement events.
// The transition id doubles as the event id, so replays are ignored.
func lifecycleEvents(evt domain.TransitionEvent) []domain.Event {
	t := evt.Transition
	switch {
	case t.Action == domain.ActionSubmit:
		return []domain.Event{{ID: t.ID, UserID: evt.Submission.AuthorID, Type: domain.EventSubmissionSubmitted, OccurredAt: t.CreatedAt}}
	case t.ToStatus == domain.StatusPublished && t.FromStatus != domain.StatusPublished:
		return []domain.Event{{ID: t.ID, UserID: evt.Submission.AuthorID, Type: domain.EventSubmissionPublished, OccurredAt: t.CreatedAt}}
	}
	return nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeApplied
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		return metrics.OutcomeForbidden
	case errors.Is(err, domain.ErrPreconditionFailed):
		return metrics.OutcomePrecondition
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}
