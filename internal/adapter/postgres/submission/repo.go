// Package submission implements the Submission and Transition repositories
// using PostgreSQL.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new submission repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columnList = "id, author_id, source, title, content, status, review_notes, book_decision, " +
	"publication_format, revision_no, story_manager_id, book_manager_id, content_admin_id, " +
	"version, published_at, created_at, updated_at"

var columns = strings.Split(columnList, ", ")

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a submission by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("submissions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	s, err := scanSubmission(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

// List returns submissions matching f, most recently updated first, and the
// total number of matches.
func (r *Repo) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	where := sq.And{}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, sq.Eq{"status": statuses})
	}
	if f.AuthorID != nil {
		where = append(where, sq.Eq{"author_id": *f.AuthorID})
	}
	if f.Search != "" {
		where = append(where, sq.ILike{"title": "%" + f.Search + "%"})
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := max(f.Offset, 0)

	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From("submissions").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(columns...).
		From("submissions").
		Where(where).
		OrderBy("updated_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Submission, 0, limit)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}

	return out, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new submission.
func (r *Repo) Create(ctx context.Context, s domain.Submission) (*domain.Submission, error) {
	query, args, err := postgres.Builder().
		Insert("submissions").
		Columns("id", "author_id", "source", "title", "content", "status", "revision_no", "version", "created_at", "updated_at").
		Values(s.ID, s.AuthorID, string(s.Source), s.Title, s.Content, string(s.Status), s.RevisionNo, s.Version, s.CreatedAt, s.UpdatedAt).
		Suffix("RETURNING " + columnList).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanSubmission(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "submission", s.ID)
	}
	return created, nil
}

const updateContentSQL = `
UPDATE submissions
SET title = $2, content = $3, updated_at = $4
WHERE id = $1 AND status IN ('DRAFT', 'NEEDS_REVISION')
RETURNING ` + columnList

// UpdateContent changes title and content while the submission is editable.
// It fails with domain.ErrPreconditionFailed once the submission has moved on.
func (r *Repo) UpdateContent(ctx context.Context, id uuid.UUID, title, content string, updatedAt time.Time) (*domain.Submission, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateContentSQL, id, title, content, updatedAt)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("submission %s: %w", id, domain.ErrPreconditionFailed)
		}
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

const updateStatusSQL = `
UPDATE submissions
SET status             = $4,
    review_notes       = COALESCE($5, review_notes),
    book_decision      = COALESCE($6, book_decision),
    publication_format = COALESCE($7, publication_format),
    revision_no        = revision_no + CASE WHEN $8 THEN 1 ELSE 0 END,
    story_manager_id   = COALESCE($9, story_manager_id),
    book_manager_id    = COALESCE($10, book_manager_id),
    content_admin_id   = COALESCE($11, content_admin_id),
    published_at       = COALESCE($12, published_at),
    updated_at         = $13,
    version            = version + 1
WHERE id = $1 AND status = $2 AND version = $3
RETURNING ` + columnList

// UpdateStatus applies upd only if the row still has upd.ExpectedStatus and
// upd.ExpectedVersion. Otherwise it returns domain.ErrPreconditionFailed and
// writes nothing. A missing row is reported the same way, since the caller
// loaded it moments before.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, upd domain.StatusUpdate) (*domain.Submission, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateStatusSQL,
		id,
		string(upd.ExpectedStatus),
		upd.ExpectedVersion,
		string(upd.NewStatus),
		upd.ReviewNotes,
		enumPtr(upd.BookDecision),
		enumPtr(upd.PublicationFormat),
		upd.IncrementRevision,
		upd.StoryManagerID,
		upd.BookManagerID,
		upd.ContentAdminID,
		upd.PublishedAt,
		upd.UpdatedAt,
	)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("submission %s: %w", id, domain.ErrPreconditionFailed)
		}
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

// Delete removes a submission with its transitions and comments.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

// TransitionRepo provides append-only transition persistence.
type TransitionRepo struct {
	pool *pgxpool.Pool
}

// NewTransitionRepo creates a new transition repository.
func NewTransitionRepo(pool *pgxpool.Pool) *TransitionRepo {
	return &TransitionRepo{pool: pool}
}

const insertTransitionSQL = `
INSERT INTO submission_transitions
    (id, submission_id, from_status, to_status, action, comment, performed_by_id, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create appends a transition record.
func (r *TransitionRepo) Create(ctx context.Context, t domain.Transition) (domain.Transition, error) {
	var meta []byte
	if !t.Metadata.IsZero() {
		raw, err := json.Marshal(t.Metadata)
		if err != nil {
			return domain.Transition{}, fmt.Errorf("marshal transition metadata: %w", err)
		}
		meta = raw
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertTransitionSQL,
		t.ID, t.SubmissionID, string(t.FromStatus), string(t.ToStatus), string(t.Action),
		t.Comment, t.PerformedByID, meta, t.CreatedAt,
	)
	if err != nil {
		return domain.Transition{}, postgres.MapError(err, "transition", t.ID)
	}
	return t, nil
}

const listTransitionsSQL = `
SELECT id, submission_id, from_status, to_status, action, comment, performed_by_id, metadata, created_at
FROM submission_transitions
WHERE submission_id = $1
ORDER BY created_at, id`

// ListBySubmission returns the transitions of a submission, oldest first.
func (r *TransitionRepo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.Transition, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listTransitionsSQL, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transition
	for rows.Next() {
		var (
			t                domain.Transition
			from, to, action string
			meta             []byte
		)
		if err := rows.Scan(&t.ID, &t.SubmissionID, &from, &to, &action, &t.Comment, &t.PerformedByID, &meta, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		t.FromStatus = domain.SubmissionStatus(from)
		t.ToStatus = domain.SubmissionStatus(to)
		t.Action = domain.WorkflowAction(action)
		if len(meta) > 0 {
			t.Metadata = &domain.TransitionMetadata{}
			if err := json.Unmarshal(meta, t.Metadata); err != nil {
				return nil, fmt.Errorf("decode transition %s metadata: %w", t.ID, err)
			}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		s              domain.Submission
		source, status string
		bookDecision   *string
		format         *string
	)
	err := row.Scan(
		&s.ID, &s.AuthorID, &source, &s.Title, &s.Content, &status,
		&s.ReviewNotes, &bookDecision, &format, &s.RevisionNo,
		&s.StoryManagerID, &s.BookManagerID, &s.ContentAdminID,
		&s.Version, &s.PublishedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Source = domain.SubmissionSource(source)
	s.Status = domain.SubmissionStatus(status)
	if bookDecision != nil {
		d := domain.BookDecision(*bookDecision)
		s.BookDecision = &d
	}
	if format != nil {
		f := domain.PublicationFormat(*format)
		s.PublicationFormat = &f
	}
	return &s, nil
}

// enumPtr converts a pointer to a string-like enum into *string (nil -> NULL).
func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
