package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/realtime"
)

// Notify stores one notification per distinct recipient in a single batch
// and then pushes each to the recipient's live connections. Push failures
// are logged and never fail the call.
func (s *Service) Notify(ctx context.Context, recipients []uuid.UUID, typ domain.NotificationType, title, message string, data domain.Payload) error {
	if !typ.IsValid() {
		return domain.NewValidationError("type", "unknown notification type")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewValidationError("title", "required")
	}

	ids := distinct(recipients)
	if len(ids) == 0 {
		return nil
	}

	now := s.now()
	rows := make([]domain.Notification, len(ids))
	for i, id := range ids {
		rows[i] = domain.Notification{
			ID:        uuid.New(),
			UserID:    id,
			Type:      typ,
			Title:     title,
			Message:   message,
			Data:      data,
			CreatedAt: now,
		}
	}

	if err := s.notifications.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}
	s.metrics.RecordCreated(string(typ), len(rows))

	s.log.DebugContext(ctx, "notifications created",
		slog.String("type", string(typ)),
		slog.Int("recipients", len(rows)),
	)

	s.push(ctx, rows)
	return nil
}

func (s *Service) push(ctx context.Context, rows []domain.Notification) {
	if s.live == nil {
		return
	}
	ctx, cancel := s.pushContext(ctx)
	defer cancel()
	for _, n := range rows {
		raw, err := json.Marshal(newFrame(n))
		if err != nil {
			s.log.ErrorContext(ctx, "encode live frame",
				slog.String("notification_id", n.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		msg := realtime.Message{Event: realtime.EventNotification, UserID: n.UserID, Data: raw}
		if err := s.live.Publish(ctx, msg); err != nil {
			s.log.WarnContext(ctx, "live push failed",
				slog.String("user_id", n.UserID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// pushContext applies the push timeout. The deadline covers a whole batch;
// once it passes the remaining pushes fail fast and are logged.
func (s *Service) pushContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.PushTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.PushTimeout)
}

// frame is the JSON shape of a notification on the live channel.
type frame struct {
	ID        uuid.UUID          `json:"id"`
	Type      string             `json:"type"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	DataKind  domain.PayloadKind `json:"dataKind,omitempty"`
	Data      domain.Payload     `json:"data,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

func newFrame(n domain.Notification) frame {
	f := frame{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
	if n.Data != nil {
		f.DataKind = n.Data.Kind()
	}
	return f
}

// distinct drops nil and repeated ids, keeping first-seen order.
func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
