package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

type statusMessage struct {
	title     string
	message   string // formatted with the submission title
	nextSteps []string
}

var authorMessages = map[domain.SubmissionStatus]statusMessage{
	domain.StatusPending: {
		title:     "Story Submitted Successfully",
		message:   "Your story %q has been submitted and is waiting for review.",
		nextSteps: []string{"Wait for reviewer assignment", "Check your dashboard for updates"},
	},
	domain.StatusStoryReview: {
		title:     "Story Under Review",
		message:   "A story manager has started reviewing %q.",
		nextSteps: []string{"Review in progress", "Check your dashboard for updates"},
	},
	domain.StatusNeedsRevision: {
		title:     "Revision Requested",
		message:   "Your story %q needs some changes before it can move forward.",
		nextSteps: []string{"Review the feedback carefully", "Make the suggested changes", "Resubmit your story"},
	},
	domain.StatusStoryApproved: {
		title:     "Story Approved!",
		message:   "Your story %q passed story review.",
		nextSteps: []string{"Your story is moving to format review", "No action needed from you"},
	},
	domain.StatusFormatReview: {
		title:     "Format Review in Progress",
		message:   "Your story %q is being reviewed for publication format.",
		nextSteps: []string{"Format decision in progress", "Images and layout being determined"},
	},
	domain.StatusContentReview: {
		title:     "Final Review Stage",
		message:   "Your story %q has reached the final content review.",
		nextSteps: []string{"Final review in progress", "Publication preparation underway"},
	},
	domain.StatusApproved: {
		title:     "Story Ready for Publication",
		message:   "Your story %q has been approved for publication.",
		nextSteps: []string{"Publication is being scheduled", "No action needed from you"},
	},
	domain.StatusPublished: {
		title:     "Story Published!",
		message:   "Your story %q is now published.",
		nextSteps: []string{"Share your published story!", "Start writing your next story"},
	},
	domain.StatusRejected: {
		title:     "Story Status Update",
		message:   "Your story %q was not accepted for publication.",
		nextSteps: []string{"Review the feedback", "Consider the suggestions", "You can submit a new improved version"},
	},
	domain.StatusArchived: {
		title:     "Story Status Update",
		message:   "Your story %q has been archived.",
		nextSteps: []string{"Review the feedback", "Consider the suggestions", "You can submit a new improved version"},
	},
}

type reviewerMessage struct {
	roles   []domain.UserRole
	title   string
	message string // formatted with the submission title
}

// reviewerMessageFor picks who has to act next on the submission, if anyone.
func reviewerMessageFor(evt domain.TransitionEvent) (reviewerMessage, bool) {
	sub := evt.Submission
	switch sub.Status {
	case domain.StatusPending:
		if evt.Transition.Action == domain.ActionResubmit {
			return reviewerMessage{
				roles:   []domain.UserRole{domain.RoleAdmin, domain.RoleContentAdmin},
				title:   "Story Resubmitted",
				message: "%q was revised and resubmitted for review.",
			}, true
		}
		return reviewerMessage{
			roles:   []domain.UserRole{domain.RoleAdmin, domain.RoleContentAdmin},
			title:   "New Story Submission",
			message: "%q is waiting for review.",
		}, true
	case domain.StatusStoryApproved:
		return reviewerMessage{
			roles:   []domain.UserRole{domain.RoleContentAdmin},
			title:   "Story Ready for Format Review",
			message: "%q passed story review and needs a format reviewer.",
		}, true
	case domain.StatusFormatReview:
		return reviewerMessage{
			roles:   []domain.UserRole{domain.RoleBookManager},
			title:   "Format Review Required",
			message: "%q is waiting for a format decision.",
		}, true
	case domain.StatusContentReview:
		return reviewerMessage{
			roles:   []domain.UserRole{domain.RoleContentAdmin},
			title:   "Final Review Required",
			message: "%q is waiting for final content review.",
		}, true
	case domain.StatusApproved:
		if sub.PublicationFormat == nil {
			return reviewerMessage{
				roles:   []domain.UserRole{domain.RoleBookManager},
				title:   "Publication Format Required",
				message: "%q is approved and needs a publication format.",
			}, true
		}
		return reviewerMessage{
			roles:   []domain.UserRole{domain.RoleContentAdmin},
			title:   "Ready to Publish",
			message: "%q has a publication format and can be published.",
		}, true
	}
	return reviewerMessage{}, false
}

// OnTransition notifies the author about the new status and the reviewers
// who have to act next. Reviewers never include the actor or the author.
func (s *Service) OnTransition(ctx context.Context, evt domain.TransitionEvent) error {
	sub := evt.Submission
	payload := transitionPayload(evt)

	var errs []error

	if msg, ok := authorMessages[sub.Status]; ok {
		payload := payload
		payload.NextSteps = msg.nextSteps
		err := s.Notify(ctx, []uuid.UUID{sub.AuthorID}, domain.NotificationWriter,
			msg.title, fmt.Sprintf(msg.message, sub.Title), payload)
		if err != nil {
			errs = append(errs, fmt.Errorf("notify author: %w", err))
		}
	}

	if msg, ok := reviewerMessageFor(evt); ok {
		ids, err := s.users.ListIDsByRole(ctx, msg.roles...)
		if err != nil {
			errs = append(errs, fmt.Errorf("list reviewers: %w", err))
		} else {
			recipients := exclude(ids, evt.Actor.ID, sub.AuthorID)
			err := s.Notify(ctx, recipients, domain.NotificationAssignment,
				msg.title, fmt.Sprintf(msg.message, sub.Title), payload)
			if err != nil {
				errs = append(errs, fmt.Errorf("notify reviewers: %w", err))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.log.DebugContext(ctx, "transition fan-out done",
		slog.String("submission_id", sub.ID.String()),
		slog.String("status", string(sub.Status)),
	)
	return nil
}

func transitionPayload(evt domain.TransitionEvent) domain.TransitionPayload {
	p := domain.TransitionPayload{
		SubmissionID:      evt.Submission.ID,
		Title:             evt.Submission.Title,
		Action:            evt.Transition.Action,
		FromStatus:        evt.Transition.FromStatus,
		ToStatus:          evt.Transition.ToStatus,
		Feedback:          evt.Transition.Comment,
		BookDecision:      evt.Submission.BookDecision,
		PublicationFormat: evt.Submission.PublicationFormat,
	}
	if m := evt.Transition.Metadata; m != nil {
		if m.BookDecision != nil {
			p.BookDecision = m.BookDecision
		}
		if m.PublicationFormat != nil {
			p.PublicationFormat = m.PublicationFormat
		}
	}
	return p
}

func exclude(ids []uuid.UUID, skip ...uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
outer:
	for _, id := range ids {
		for _, s := range skip {
			if id == s {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}
