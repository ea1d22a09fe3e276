package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a feedback annotation on a submission.
// Threads are one level deep: a reply's parent is always top-level.
type Comment struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	AuthorID     uuid.UUID
	ParentID     *uuid.UUID
	Content      string
	Status       CommentStatus
	IsResolved   bool
	ResolvedAt   *time.Time
	ResolvedByID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Replies is populated only by threaded listings.
	Replies []Comment
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool { return c.ParentID != nil }
