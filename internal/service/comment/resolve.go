package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/permission"
)

// Resolve sets the resolution state of a comment.
//
// Resolving a top-level comment also resolves its open replies; reopening
// it leaves replies as they are. A reply under a resolved parent cannot be
// toggled on its own. Setting the current state again is a no-op.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, resolved bool) (*domain.Comment, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	c, sub, err := s.load(ctx, actor, id, func(c *domain.Comment) bool {
		return c.AuthorID == actor.ID
	})
	if err != nil {
		return nil, err
	}
	if !permission.CanResolveComment(actor, c, sub) {
		return nil, domain.ErrForbidden
	}

	if c.IsReply() {
		parent, err := s.comments.GetByID(ctx, *c.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent comment: %w", err)
		}
		if parent.IsResolved {
			return nil, domain.NewPreconditionError("parent comment is resolved")
		}
	}

	if c.IsResolved == resolved {
		return c, nil
	}

	var (
		updated *domain.Comment
		cascade int
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now()

		var err error
		updated, err = s.comments.SetResolved(txCtx, id, resolved, actor.ID, now)
		if err != nil {
			return fmt.Errorf("set resolved: %w", err)
		}

		if resolved && !c.IsReply() {
			cascade, err = s.comments.ResolveReplies(txCtx, id, actor.ID, now)
			if err != nil {
				return fmt.Errorf("resolve replies: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment resolution changed",
		slog.String("comment_id", id.String()),
		slog.Bool("resolved", resolved),
		slog.Int("replies_resolved", cascade),
	)

	if resolved && s.notifier != nil && c.AuthorID != actor.ID {
		payload := domain.CommentPayload{SubmissionID: sub.ID, CommentID: c.ID, ParentID: c.ParentID, Resolved: true}
		title := fmt.Sprintf("Comment resolved on %q", sub.Title)
		if err := s.notifier.Notify(context.WithoutCancel(ctx), []uuid.UUID{c.AuthorID}, domain.NotificationComment, title, preview(c.Content), payload); err != nil {
			s.log.ErrorContext(ctx, "comment notification failed",
				slog.String("comment_id", c.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	return updated, nil
}
