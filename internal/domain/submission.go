package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a piece of user-authored content moving through review.
type Submission struct {
	ID       uuid.UUID
	AuthorID uuid.UUID
	Source   SubmissionSource
	Title    string
	Content  string

	Status            SubmissionStatus
	ReviewNotes       *string
	BookDecision      *BookDecision
	PublicationFormat *PublicationFormat
	RevisionNo        int

	StoryManagerID *uuid.UUID
	BookManagerID  *uuid.UUID
	ContentAdminID *uuid.UUID

	// Version is bumped on every accepted status change.
	Version int

	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAuthor reports whether userID wrote the submission.
func (s *Submission) IsAuthor(userID uuid.UUID) bool {
	return s.AuthorID == userID
}

// Clone returns a copy of s that shares no pointers with it.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	c := *s
	c.ReviewNotes = clonePtr(s.ReviewNotes)
	c.BookDecision = clonePtr(s.BookDecision)
	c.PublicationFormat = clonePtr(s.PublicationFormat)
	c.StoryManagerID = clonePtr(s.StoryManagerID)
	c.BookManagerID = clonePtr(s.BookManagerID)
	c.ContentAdminID = clonePtr(s.ContentAdminID)
	c.PublishedAt = clonePtr(s.PublishedAt)
	return &c
}

// IsAssigned reports whether userID is recorded as one of the reviewers.
func (s *Submission) IsAssigned(userID uuid.UUID) bool {
	for _, id := range []*uuid.UUID{s.StoryManagerID, s.BookManagerID, s.ContentAdminID} {
		if id != nil && *id == userID {
			return true
		}
	}
	return false
}

// StatusUpdate is the set of fields written together with a status change.
// Nil pointers leave the column unchanged.
type StatusUpdate struct {
	ExpectedStatus  SubmissionStatus
	ExpectedVersion int
	NewStatus       SubmissionStatus

	ReviewNotes       *string
	BookDecision      *BookDecision
	PublicationFormat *PublicationFormat
	IncrementRevision bool

	StoryManagerID *uuid.UUID
	BookManagerID  *uuid.UUID
	ContentAdminID *uuid.UUID

	PublishedAt *time.Time
	UpdatedAt   time.Time
}

// SubmissionFilter narrows review-queue listings.
type SubmissionFilter struct {
	Statuses []SubmissionStatus
	AuthorID *uuid.UUID
	Search   string
	Limit    int
	Offset   int
}

// Transition is an immutable record of one accepted status change.
type Transition struct {
	ID            uuid.UUID
	SubmissionID  uuid.UUID
	FromStatus    SubmissionStatus
	ToStatus      SubmissionStatus
	Action        WorkflowAction
	Comment       *string
	PerformedByID uuid.UUID
	Metadata      *TransitionMetadata
	CreatedAt     time.Time
}

// Clone returns a copy of t that shares no pointers with it.
func (t Transition) Clone() Transition {
	t.Comment = clonePtr(t.Comment)
	if t.Metadata != nil {
		m := *t.Metadata
		m.BookDecision = clonePtr(m.BookDecision)
		m.PublicationFormat = clonePtr(m.PublicationFormat)
		t.Metadata = &m
	}
	return t
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TransitionMetadata carries the stage-specific decisions made during a transition.
type TransitionMetadata struct {
	BookDecision      *BookDecision      `json:"bookDecision,omitempty"`
	PublicationFormat *PublicationFormat `json:"publicationFormat,omitempty"`
	RevisionNo        int                `json:"revisionNo,omitempty"`
	Bulk              bool               `json:"bulk,omitempty"`
}

// IsZero reports whether no metadata was recorded.
func (m *TransitionMetadata) IsZero() bool {
	return m == nil || (m.BookDecision == nil && m.PublicationFormat == nil && m.RevisionNo == 0 && !m.Bulk)
}

// TransitionEvent is emitted after a transition commits.
type TransitionEvent struct {
	Submission Submission
	Transition Transition
	Actor      Actor
}
