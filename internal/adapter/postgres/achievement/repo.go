// Package achievement implements stats counters, awarded achievements and
// processed-event bookkeeping using PostgreSQL.
package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// Repo provides achievement persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new achievement repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// MarkProcessed records the event id. It returns false when the event was
// already recorded.
func (r *Repo) MarkProcessed(ctx context.Context, evt domain.Event, at time.Time) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO processed_events (event_id, user_id, event_type, processed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING`,
		evt.ID, evt.UserID, string(evt.Type), at)
	if err != nil {
		return false, postgres.MapError(err, "event", evt.ID)
	}
	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Counters
// ---------------------------------------------------------------------------

const incrementSQL = `
INSERT INTO user_stats (user_id, counter, value, updated_at)
VALUES ($1, $2, GREATEST($3::bigint, 0), $4)
ON CONFLICT (user_id, counter) DO UPDATE
SET value = GREATEST(user_stats.value + $3::bigint, 0),
    updated_at = EXCLUDED.updated_at
RETURNING value`

// IncrementCounter adds delta to the counter and returns the new value.
// The value never drops below zero.
func (r *Repo) IncrementCounter(ctx context.Context, userID uuid.UUID, counter domain.StatCounter, delta int, at time.Time) (int, error) {
	var v int64
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, incrementSQL,
		userID, string(counter), int64(delta), at).Scan(&v)
	if err != nil {
		return 0, postgres.MapError(err, "user stats", userID)
	}
	return int(v), nil
}

// GetStats returns every counter recorded for the user.
func (r *Repo) GetStats(ctx context.Context, userID uuid.UUID) (map[domain.StatCounter]int, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx,
		`SELECT counter, value FROM user_stats WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[domain.StatCounter]int)
	for rows.Next() {
		var (
			counter string
			value   int64
		)
		if err := rows.Scan(&counter, &value); err != nil {
			return nil, fmt.Errorf("scan user stats: %w", err)
		}
		stats[domain.StatCounter(counter)] = int(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Awards
// ---------------------------------------------------------------------------

// Award grants the achievement. It returns false when the user already
// holds it.
func (r *Repo) Award(ctx context.Context, userID uuid.UUID, achievementID string, at time.Time) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id, awarded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, achievementID, at)
	if err != nil {
		return false, postgres.MapError(err, "user achievement", achievementID)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAwards returns the achievements held by the user, oldest first.
func (r *Repo) ListAwards(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, `
		SELECT user_id, achievement_id, awarded_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY awarded_at, achievement_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	defer rows.Close()

	var out []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.AwardedAt); err != nil {
			return nil, fmt.Errorf("scan user achievement: %w", err)
		}
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	return out, nil
}
