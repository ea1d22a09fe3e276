package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/permission"
)

// History returns the transitions of a submission, oldest first.
// A submission the actor may not view is reported as not found.
func (s *Service) History(ctx context.Context, submissionID uuid.UUID) ([]domain.Transition, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !permission.CanView(actor, sub) {
		return nil, domain.ErrNotFound
	}

	transitions, err := s.transitions.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	return transitions, nil
}

// AvailableAction is a verb the actor could apply right now.
type AvailableAction struct {
	Action           domain.WorkflowAction
	To               domain.SubmissionStatus
	RequiresFeedback bool
}

// AvailableActions lists what the actor may do with the submission in its
// current status, in pipeline order.
func (s *Service) AvailableActions(ctx context.Context, submissionID uuid.UUID) ([]AvailableAction, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !permission.CanView(actor, sub) {
		return nil, domain.ErrNotFound
	}

	rules := permission.ActionsFor(actor.Role, sub.Status)
	out := make([]AvailableAction, 0, len(rules))
	for _, r := range rules {
		if r.AuthorOnly && !sub.IsAuthor(actor.ID) {
			continue
		}
		if r.Action == domain.ActionApprove && r.Role == domain.RoleBookManager && sub.PublicationFormat != nil {
			continue
		}
		if r.Action == domain.ActionPublish && sub.PublicationFormat == nil {
			continue
		}
		out = append(out, AvailableAction{Action: r.Action, To: r.To, RequiresFeedback: r.RequiresFeedback})
	}
	return out, nil
}
