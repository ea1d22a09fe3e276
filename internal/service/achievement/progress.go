package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/storyflow-backend/internal/auth"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// Summary is the caller's standing across the whole catalog.
type Summary struct {
	Progress []domain.AchievementProgress
	Stats    map[domain.StatCounter]int
	EarnedXP int
}

// ListForUser returns every catalog entry with the caller's current counter
// value and, where earned, the award time.
func (s *Service) ListForUser(ctx context.Context) (*Summary, error) {
	actor, err := auth.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.GetStats(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	awards, err := s.stats.ListAwards(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}

	awardedAt := make(map[string]time.Time, len(awards))
	for _, a := range awards {
		awardedAt[a.AchievementID] = a.AwardedAt
	}

	sum := &Summary{Progress: make([]domain.AchievementProgress, 0, len(Catalog)), Stats: stats}
	for _, a := range Catalog {
		p := domain.AchievementProgress{Achievement: a, Current: stats[a.Counter]}
		if at, ok := awardedAt[a.ID]; ok {
			p.Earned = true
			p.AwardedAt = &at
			sum.EarnedXP += a.XPReward
		}
		sum.Progress = append(sum.Progress, p)
	}
	return sum, nil
}
