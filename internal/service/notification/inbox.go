package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/realtime"
)

const (
	maxPageSize = 100
	maxBatchIDs = 200
)

// ListInput is the inbox page request.
type ListInput struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// Page is one page of the caller's inbox.
type Page struct {
	Items  []domain.Notification
	Total  int
	Unread int
}

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context, in ListInput) (*Page, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if in.Offset < 0 {
		return nil, domain.NewValidationError("offset", "must be >= 0")
	}
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = s.cfg.DefaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}

	items, total, err := s.notifications.List(ctx, actor.ID, in.UnreadOnly, limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.notifications.UnreadCount(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}
	return &Page{Items: items, Total: total, Unread: unread}, nil
}

// UnreadCount returns how many of the caller's notifications are unread.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.notifications.UnreadCount(ctx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// MarkRead marks the given notifications of the caller as read. Ids that
// belong to someone else are ignored. Returns the number changed.
func (s *Service) MarkRead(ctx context.Context, ids []uuid.UUID) (int, error) {
	return s.setRead(ctx, ids, true)
}

// MarkUnread is the inverse of MarkRead.
func (s *Service) MarkUnread(ctx context.Context, ids []uuid.UUID) (int, error) {
	return s.setRead(ctx, ids, false)
}

func (s *Service) setRead(ctx context.Context, ids []uuid.UUID, read bool) (int, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	ids = distinct(ids)
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "required")
	}
	if len(ids) > maxBatchIDs {
		return 0, domain.NewValidationError("ids", fmt.Sprintf("at most %d ids", maxBatchIDs))
	}

	n, err := s.notifications.SetRead(ctx, actor.ID, ids, read, s.now())
	if err != nil {
		return 0, fmt.Errorf("set read: %w", err)
	}
	if n > 0 {
		s.pushUnreadCount(ctx, actor.ID)
	}
	return n, nil
}

// MarkAllRead marks every unread notification of the caller as read.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.notifications.MarkAllRead(ctx, actor.ID, s.now())
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	if n > 0 {
		s.pushUnreadCount(ctx, actor.ID)
	}
	return n, nil
}

// Delete removes one of the caller's notifications.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := s.notifications.Delete(ctx, actor.ID, id); err != nil {
		return fmt.Errorf("notification %s: %w", id, err)
	}
	return nil
}

// Cleanup removes read notifications created before now-olderThan. A zero
// olderThan uses the configured retention.
func (s *Service) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = time.Duration(s.cfg.RetentionDays) * 24 * time.Hour
	}
	cutoff := s.now().Add(-olderThan)

	n, err := s.notifications.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}

	s.log.InfoContext(ctx, "notification cleanup",
		slog.Time("cutoff", cutoff),
		slog.Int("deleted", n),
	)
	return n, nil
}

// pushUnreadCount tells the caller's other tabs about the new badge value.
func (s *Service) pushUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.live == nil {
		return
	}
	n, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "count unread for push", slog.String("error", err.Error()))
		return
	}
	raw := []byte(fmt.Sprintf(`{"count":%d}`, n))
	msg := realtime.Message{Event: realtime.EventUnreadCount, UserID: userID, Data: raw}
	pushCtx, cancel := s.pushContext(ctx)
	defer cancel()
	if err := s.live.Publish(pushCtx, msg); err != nil {
		s.log.WarnContext(ctx, "push unread count", slog.String("error", err.Error()))
	}
}
