package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/permission"
)

// BulkItemResult is the per-submission outcome of BulkSetStatus.
type BulkItemResult struct {
	SubmissionID uuid.UUID
	OK           bool
	Error        error
}

// BulkResult summarises a BulkSetStatus call.
type BulkResult struct {
	Target    domain.SubmissionStatus
	Items     []BulkItemResult
	Succeeded int
	Failed    int
}

// BulkSetStatus moves several submissions straight to a target status,
// bypassing the per-stage rules. Only roles with bulk targets may call it.
//
// Each submission is updated in its own transaction so one stale row does
// not block the rest. Items already at the target fail with a precondition
// error and produce no transition record.
func (s *Service) BulkSetStatus(ctx context.Context, input BulkStatusInput) (*BulkResult, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	target, comment, err := input.parse(s.cfg.BulkMaxItems, s.cfg.MaxFeedbackLength)
	if err != nil {
		return nil, err
	}

	if !permission.CanSetStatus(actor.Role, target) {
		return nil, domain.ErrForbidden
	}

	res := &BulkResult{Target: target, Items: make([]BulkItemResult, 0, len(input.SubmissionIDs))}
	for _, id := range input.SubmissionIDs {
		evt, itemErr := s.setStatus(ctx, actor, id, target, comment)

		item := BulkItemResult{SubmissionID: id, OK: itemErr == nil, Error: itemErr}
		res.Items = append(res.Items, item)
		s.metrics.RecordBulkItem(string(target), outcomeFor(itemErr))

		if itemErr != nil {
			res.Failed++
			if !isClientError(itemErr) {
				s.log.ErrorContext(ctx, "bulk status change failed",
					slog.String("submission_id", id.String()),
					slog.String("target", string(target)),
					slog.String("error", itemErr.Error()),
				)
			}
			continue
		}
		res.Succeeded++
		s.dispatch(ctx, *evt)
	}

	s.log.InfoContext(ctx, "bulk status change",
		slog.String("actor_id", actor.ID.String()),
		slog.String("target", string(target)),
		slog.Int("succeeded", res.Succeeded),
		slog.Int("failed", res.Failed),
	)

	return res, nil
}

func (s *Service) setStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, target domain.SubmissionStatus, comment *string) (*domain.TransitionEvent, error) {
	var evt domain.TransitionEvent

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sub, err := s.submissions.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get submission: %w", err)
		}
		if sub.Status == target {
			return domain.NewPreconditionError("already %s", target)
		}

		now := s.now()
		upd := domain.StatusUpdate{
			ExpectedStatus:    sub.Status,
			ExpectedVersion:   sub.Version,
			NewStatus:         target,
			ReviewNotes:       comment,
			IncrementRevision: target == domain.StatusNeedsRevision,
			UpdatedAt:         now,
		}
		if target == domain.StatusPublished {
			upd.PublishedAt = &now
		}

		meta := &domain.TransitionMetadata{Bulk: true}
		if upd.IncrementRevision {
			meta.RevisionNo = sub.RevisionNo + 1
		}

		updated, err := s.submissions.UpdateStatus(txCtx, sub.ID, upd)
		if err != nil {
			return fmt.Errorf("update submission status: %w", err)
		}

		record, err := s.transitions.Create(txCtx, domain.Transition{
			ID:            uuid.New(),
			SubmissionID:  sub.ID,
			FromStatus:    sub.Status,
			ToStatus:      target,
			Action:        domain.ActionSetStatus,
			Comment:       comment,
			PerformedByID: actor.ID,
			Metadata:      meta,
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("create transition: %w", err)
		}

		evt = domain.TransitionEvent{Submission: *updated, Transition: record, Actor: actor}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &evt, nil
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrPreconditionFailed) ||
		errors.Is(err, domain.ErrValidation)
}
