// Package notification implements the Notification repository using PostgreSQL.
package notification

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var columns = []string{"id", "user_id", "type", "title", "message", "data", "read", "read_at", "created_at"}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts all notifications in one statement.
func (r *Repo) CreateBatch(ctx context.Context, ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	ins := postgres.Builder().Insert("notifications").Columns(columns...)
	for _, n := range ns {
		data, err := domain.EncodePayload(n.Data)
		if err != nil {
			return fmt.Errorf("encode notification %s: %w", n.ID, err)
		}
		ins = ins.Values(n.ID, n.UserID, string(n.Type), n.Title, n.Message, data, n.Read, n.ReadAt, n.CreatedAt)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "notification batch", len(ns))
	}
	return nil
}

// SetRead marks the given notifications of userID as read or unread and
// returns how many changed. IDs owned by other users are ignored.
func (r *Repo) SetRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, read bool, at time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var readAt *time.Time
	if read {
		readAt = &at
	}
	query, args, err := postgres.Builder().
		Update("notifications").
		Set("read", read).
		Set("read_at", readAt).
		Where(sq.Eq{"user_id": userID, "id": ids}).
		Where(sq.NotEq{"read": read}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "notification", userID)
	}
	return int(tag.RowsAffected()), nil
}

// MarkAllRead marks every unread notification of userID as read.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE notifications SET read = true, read_at = $2 WHERE user_id = $1 AND NOT read`, userID, at)
	if err != nil {
		return 0, postgres.MapError(err, "notification", userID)
	}
	return int(tag.RowsAffected()), nil
}

// Delete removes one notification owned by userID.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteReadBefore removes read notifications created before cutoff.
func (r *Repo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM notifications WHERE read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns notifications of userID, newest first, and the total count
// for the same filter.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if unreadOnly {
		where = append(where, sq.Eq{"read": false})
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset = max(offset, 0)

	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(columns...).
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return out, total, nil
}

// UnreadCount returns the number of unread notifications of userID.
func (r *Repo) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var (
		n    domain.Notification
		typ  string
		data []byte
	)
	if err := row.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &data, &n.Read, &n.ReadAt, &n.CreatedAt); err != nil {
		return domain.Notification{}, fmt.Errorf("scan notification: %w", err)
	}
	n.Type = domain.NotificationType(typ)

	p, err := domain.DecodePayload(data)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("decode notification %s data: %w", n.ID, err)
	}
	n.Data = p
	return n, nil
}
