package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{
		ID:        uuid.New(),
		Email:     "user-" + suffix + "@example.com",
		Name:      "Test " + string(role) + " " + suffix,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Name, string(u.Role), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// SeedSubmission inserts a submission by authorID in the given status.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, status domain.SubmissionStatus) domain.Submission {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := domain.Submission{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Source:    domain.SourceWriter,
		Title:     "Story " + uniqueSuffix(),
		Content:   "Once upon a time.",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO submissions (id, author_id, source, title, content, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.AuthorID, string(s.Source), s.Title, s.Content, string(s.Status), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission: %v", err)
	}
	return s
}

// SeedComment inserts an open comment. parentID may be nil.
func SeedComment(t *testing.T, pool *pgxpool.Pool, submissionID, authorID uuid.UUID, parentID *uuid.UUID) domain.Comment {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Comment{
		ID:           uuid.New(),
		SubmissionID: submissionID,
		AuthorID:     authorID,
		ParentID:     parentID,
		Content:      "Comment " + uniqueSuffix(),
		Status:       domain.CommentStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO comments (id, submission_id, author_id, parent_id, content, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, 'OPEN', $6, $7)`,
		c.ID, c.SubmissionID, c.AuthorID, c.ParentID, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}
	return c
}
