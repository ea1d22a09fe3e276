package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/permission"
)

const previewLength = 120

// CreateInput holds the parameters for Create.
type CreateInput struct {
	SubmissionID uuid.UUID
	Content      string
	ParentID     *uuid.UUID
}

// Create adds a comment or a reply to a top-level comment. A reply starts
// with its parent's resolution state.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Comment, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.parseContent(input.Content)
	if err != nil {
		return nil, err
	}

	sub, err := s.visibleSubmission(ctx, actor, input.SubmissionID)
	if err != nil {
		return nil, err
	}
	if !permission.CanComment(actor, sub) {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	c := domain.Comment{
		ID:           uuid.New(),
		SubmissionID: sub.ID,
		AuthorID:     actor.ID,
		Content:      content,
		Status:       domain.CommentStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var parent *domain.Comment
	if input.ParentID != nil {
		parent, err = s.comments.GetByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("parent_id", "parent comment does not exist")
			}
			return nil, fmt.Errorf("get parent comment: %w", err)
		}
		if parent.SubmissionID != sub.ID {
			return nil, domain.NewValidationError("parent_id", "parent comment belongs to another submission")
		}
		if parent.IsReply() {
			return nil, domain.NewValidationError("parent_id", "replies cannot be nested")
		}
		c.ParentID = &parent.ID
		c.Status = parent.Status
		c.IsResolved = parent.IsResolved
		c.ResolvedAt = parent.ResolvedAt
		c.ResolvedByID = parent.ResolvedByID
	}

	created, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment created",
		slog.String("comment_id", created.ID.String()),
		slog.String("submission_id", sub.ID.String()),
		slog.Bool("reply", created.IsReply()),
	)

	s.afterCreate(ctx, actor, sub, parent, created)
	return created, nil
}

// afterCreate notifies the people the comment concerns and records the
// achievement event. Failures are logged only.
func (s *Service) afterCreate(ctx context.Context, actor domain.Actor, sub *domain.Submission, parent *domain.Comment, c *domain.Comment) {
	ctx = context.WithoutCancel(ctx)

	if s.notifier != nil {
		var recipients []uuid.UUID
		if sub.AuthorID != actor.ID {
			recipients = append(recipients, sub.AuthorID)
		}
		title := fmt.Sprintf("New comment on %q", sub.Title)
		if parent != nil {
			title = fmt.Sprintf("New reply on %q", sub.Title)
			if parent.AuthorID != actor.ID {
				recipients = append(recipients, parent.AuthorID)
			}
		}
		if len(recipients) > 0 {
			payload := domain.CommentPayload{SubmissionID: sub.ID, CommentID: c.ID, ParentID: c.ParentID}
			if err := s.notifier.Notify(ctx, recipients, domain.NotificationComment, title, preview(c.Content), payload); err != nil {
				s.log.ErrorContext(ctx, "comment notification failed",
					slog.String("comment_id", c.ID.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if s.achievements != nil {
		evt := domain.Event{ID: c.ID, UserID: actor.ID, Type: domain.EventCommentPosted, OccurredAt: c.CreatedAt}
		if err := s.achievements.OnEvent(ctx, evt); err != nil {
			s.log.ErrorContext(ctx, "achievement evaluation failed",
				slog.String("comment_id", c.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Edit replaces the text of a comment. Only its author may edit.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	content, err = s.parseContent(content)
	if err != nil {
		return nil, err
	}

	c, _, err := s.load(ctx, actor, id, func(c *domain.Comment) bool {
		return permission.CanEditComment(actor.ID, c)
	})
	if err != nil {
		return nil, err
	}
	if !permission.CanEditComment(actor.ID, c) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.comments.UpdateContent(ctx, id, content, s.now())
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return updated, nil
}

// Delete removes a comment and its replies. Authors and admins may delete.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return err
	}

	c, _, err := s.load(ctx, actor, id, func(c *domain.Comment) bool {
		return permission.CanDeleteComment(actor, c)
	})
	if err != nil {
		return err
	}
	if !permission.CanDeleteComment(actor, c) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment deleted",
		slog.String("comment_id", id.String()),
		slog.String("actor_id", actor.ID.String()),
	)
	return nil
}

// List returns the comments of a submission as threads: top-level comments
// oldest first, each with its replies oldest first.
func (s *Service) List(ctx context.Context, submissionID uuid.UUID) ([]domain.Comment, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleSubmission(ctx, actor, submissionID); err != nil {
		return nil, err
	}

	flat, err := s.comments.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return thread(flat), nil
}

// thread nests replies under their parents, keeping input order.
func thread(flat []domain.Comment) []domain.Comment {
	index := make(map[uuid.UUID]int, len(flat))
	out := make([]domain.Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentID == nil {
			index[c.ID] = len(out)
			out = append(out, c)
		}
	}
	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			out[i].Replies = append(out[i].Replies, c)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *Service) parseContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	switch {
	case content == "":
		return "", domain.NewValidationError("content", "required")
	case utf8.RuneCountInString(content) > s.maxLength:
		return "", domain.NewValidationError("content", "too long")
	}
	return content, nil
}

func (s *Service) visibleSubmission(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if !permission.CanView(actor, sub) {
		return nil, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	return sub, nil
}

// load fetches a comment and its submission. A submission the actor cannot
// view reports the comment as not found unless owns(c) holds.
func (s *Service) load(ctx context.Context, actor domain.Actor, id uuid.UUID, owns func(*domain.Comment) bool) (*domain.Comment, *domain.Submission, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get comment: %w", err)
	}
	sub, err := s.submissions.GetByID(ctx, c.SubmissionID)
	if err != nil {
		return nil, nil, fmt.Errorf("get submission: %w", err)
	}
	if owns != nil && owns(c) {
		return c, sub, nil
	}
	if !permission.CanView(actor, sub) {
		return nil, nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return c, sub, nil
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength]) + "..."
}
