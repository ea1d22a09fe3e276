// Package user implements the User repository using PostgreSQL.
package user

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

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, name, role, created_at, updated_at`

// ---------------------------------------------------------------------------
// User operations
// ---------------------------------------------------------------------------

const upsertSQL = `
INSERT INTO users (id, email, name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    name = EXCLUDED.name,
    role = EXCLUDED.role,
    updated_at = EXCLUDED.updated_at
RETURNING ` + userColumns

// Upsert inserts the user or refreshes email, name and role of an existing row.
func (r *Repo) Upsert(ctx context.Context, u domain.User) (*domain.User, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, upsertSQL,
		u.ID, u.Email, u.Name, string(u.Role), u.UpdatedAt)

	out, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return out, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// UpdateRole changes the stored role of a user.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole, updatedAt time.Time) (*domain.User, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = $3 WHERE id = $1 RETURNING `+userColumns,
		id, string(role), updatedAt)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

// List returns users ordered by creation time, optionally narrowed to a role.
func (r *Repo) List(ctx context.Context, role *domain.UserRole, limit, offset int) ([]domain.User, error) {
	b := postgres.Builder().
		Select(userColumns).
		From("users").
		OrderBy("created_at", "id").
		Limit(uint64(max(limit, 1))).
		Offset(uint64(max(offset, 0)))
	if role != nil {
		b = b.Where(sq.Eq{"role": string(*role)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// Count returns the number of users, optionally narrowed to a role.
func (r *Repo) Count(ctx context.Context, role *domain.UserRole) (int, error) {
	b := postgres.Builder().Select("count(*)").From("users")
	if role != nil {
		b = b.Where(sq.Eq{"role": string(*role)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// ListIDsByRole returns the ids of every user holding one of the roles.
func (r *Repo) ListIDsByRole(ctx context.Context, roles ...domain.UserRole) ([]uuid.UUID, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx,
		`SELECT id FROM users WHERE role = ANY($1) ORDER BY id`, names)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return ids, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}
