package achievement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// OnEvent applies one lifecycle event. Replayed events (same ID) are
// ignored. The counter update and any awards commit together; the
// ACHIEVEMENT notification is sent after commit and its failure is only
// logged.
func (s *Service) OnEvent(ctx context.Context, evt domain.Event) error {
	if evt.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if evt.UserID == uuid.Nil {
		return domain.NewValidationError("user_id", "required")
	}
	move, ok := counterDelta[evt.Type]
	if !ok {
		return domain.NewValidationError("type", "unknown event type")
	}

	now := s.now()
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = now
	}

	var awarded []domain.Achievement
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		first, err := s.stats.MarkProcessed(txCtx, evt, now)
		if err != nil {
			return fmt.Errorf("mark processed: %w", err)
		}
		if !first {
			return nil
		}

		value, err := s.stats.IncrementCounter(txCtx, evt.UserID, move.counter, move.delta, now)
		if err != nil {
			return fmt.Errorf("increment %s: %w", move.counter, err)
		}
		if move.delta < 0 {
			return nil
		}

		for _, a := range reached(move.counter, value) {
			inserted, err := s.stats.Award(txCtx, evt.UserID, a.ID, now)
			if err != nil {
				return fmt.Errorf("award %s: %w", a.ID, err)
			}
			if inserted {
				awarded = append(awarded, a)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, a := range awarded {
		s.announce(ctx, evt.UserID, a)
	}
	return nil
}

func (s *Service) announce(ctx context.Context, userID uuid.UUID, a domain.Achievement) {
	s.metrics.RecordAchievement(a.ID)
	s.log.InfoContext(ctx, "achievement awarded",
		slog.String("user_id", userID.String()),
		slog.String("achievement", a.ID),
	)

	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, []uuid.UUID{userID}, domain.NotificationAchievement,
		"Achievement Unlocked: "+a.Name,
		fmt.Sprintf("%s. You earned %d XP.", a.Description, a.XPReward),
		domain.AchievementPayload{AchievementID: a.ID, Name: a.Name, XPReward: a.XPReward},
	)
	if err != nil {
		s.log.WarnContext(ctx, "achievement notification failed",
			slog.String("user_id", userID.String()),
			slog.String("achievement", a.ID),
			slog.String("error", err.Error()),
		)
	}
}
