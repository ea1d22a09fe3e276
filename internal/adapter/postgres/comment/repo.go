// Package comment implements the feedback Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/storyflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columnList = "id, submission_id, author_id, parent_id, content, status, is_resolved, resolved_at, resolved_by_id, created_at, updated_at"

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a comment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT `+columnList+` FROM comments WHERE id = $1`, id)

	c, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// ListBySubmission returns every comment on a submission, oldest first.
// Replies are returned flat; callers thread them.
func (r *Repo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Comment, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx,
		`SELECT `+columnList+` FROM comments WHERE submission_id = $1 ORDER BY created_at, id`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertSQL = `
INSERT INTO comments (id, submission_id, author_id, parent_id, content, status, is_resolved, resolved_at, resolved_by_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + columnList

// Create inserts a comment. A missing submission or parent is reported as
// domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, insertSQL,
		c.ID, c.SubmissionID, c.AuthorID, c.ParentID, c.Content, string(c.Status),
		c.IsResolved, c.ResolvedAt, c.ResolvedByID, c.CreatedAt, c.UpdatedAt,
	)
	created, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}
	return created, nil
}

// UpdateContent replaces the comment text.
func (r *Repo) UpdateContent(ctx context.Context, id uuid.UUID, content string, updatedAt time.Time) (*domain.Comment, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1 RETURNING `+columnList,
		id, content, updatedAt)

	c, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

const setResolvedSQL = `
UPDATE comments
SET is_resolved    = $2,
    status         = CASE WHEN $2 THEN 'RESOLVED' ELSE 'OPEN' END,
    resolved_at    = CASE WHEN $2 THEN $3::timestamptz END,
    resolved_by_id = CASE WHEN $2 THEN $4::uuid END,
    updated_at     = $3
WHERE id = $1
RETURNING ` + columnList

// SetResolved resolves or reopens one comment. Reopening clears the
// resolver fields.
func (r *Repo) SetResolved(ctx context.Context, id uuid.UUID, resolved bool, by uuid.UUID, at time.Time) (*domain.Comment, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, setResolvedSQL, id, resolved, at, by)

	c, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

const resolveRepliesSQL = `
UPDATE comments
SET is_resolved = true, status = 'RESOLVED', resolved_at = $2, resolved_by_id = $3, updated_at = $2
WHERE parent_id = $1 AND NOT is_resolved`

// ResolveReplies resolves every open direct reply of parentID and returns
// how many changed.
func (r *Repo) ResolveReplies(ctx context.Context, parentID, by uuid.UUID, at time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, resolveRepliesSQL, parentID, at, by)
	if err != nil {
		return 0, postgres.MapError(err, "comment", parentID)
	}
	return int(tag.RowsAffected()), nil
}

// Delete removes a comment and its replies.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var (
		c      domain.Comment
		status string
	)
	err := row.Scan(
		&c.ID, &c.SubmissionID, &c.AuthorID, &c.ParentID, &c.Content, &status,
		&c.IsResolved, &c.ResolvedAt, &c.ResolvedByID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.CommentStatus(status)
	return &c, nil
}
