package workflow

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// MaxIdempotencyKeyLength bounds client-supplied idempotency keys.
const MaxIdempotencyKeyLength = 128

// TransitionInput holds the parameters for ApplyTransition.
// Action, BookDecision and PublicationFormat are raw client strings.
type TransitionInput struct {
	SubmissionID      uuid.UUID
	Action            string
	Feedback          *string
	BookDecision      *string
	PublicationFormat *string
	ExpectedVersion   *int
	IdempotencyKey    string
}

// parsedTransition is TransitionInput after validation.
type parsedTransition struct {
	action            domain.WorkflowAction
	feedback          *string
	bookDecision      *domain.BookDecision
	publicationFormat *domain.PublicationFormat
}

// parse checks all fields and collects all errors.
func (i TransitionInput) parse(maxFeedback int) (parsedTransition, error) {
	var (
		errs []domain.FieldError
		out  parsedTransition
	)

	if i.SubmissionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submission_id", Message: "required"})
	}

	out.action = domain.WorkflowAction(strings.TrimSpace(i.Action))
	switch {
	case out.action == "":
		errs = append(errs, domain.FieldError{Field: "action", Message: "required"})
	case !out.action.IsValid():
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown action"})
	}

	out.feedback = trimOrNil(i.Feedback)
	if out.feedback != nil && utf8.RuneCountInString(*out.feedback) > maxFeedback {
		errs = append(errs, domain.FieldError{Field: "feedback", Message: "too long"})
	}

	if v := trimOrNil(i.BookDecision); v != nil {
		d := domain.BookDecision(strings.ToUpper(*v))
		if !d.IsValid() {
			errs = append(errs, domain.FieldError{Field: "book_decision", Message: "must be BOOK, TEXT or COLLECTION"})
		} else {
			out.bookDecision = &d
		}
	}

	if v := trimOrNil(i.PublicationFormat); v != nil {
		f := domain.PublicationFormat(strings.ToUpper(*v))
		if !f.IsValid() {
			errs = append(errs, domain.FieldError{Field: "publication_format", Message: "must be BOOK or TEXT_ONLY"})
		} else {
			out.publicationFormat = &f
		}
	}

	if i.ExpectedVersion != nil && *i.ExpectedVersion < 0 {
		errs = append(errs, domain.FieldError{Field: "expected_version", Message: "must be >= 0"})
	}

	if len(i.IdempotencyKey) > MaxIdempotencyKeyLength {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "too long"})
	}

	if len(errs) > 0 {
		return parsedTransition{}, domain.NewValidationErrors(errs)
	}
	return out, nil
}

// BulkStatusInput holds the parameters for BulkSetStatus.
type BulkStatusInput struct {
	SubmissionIDs []uuid.UUID
	TargetStatus  string
	Comment       *string
}

func (i BulkStatusInput) parse(maxItems, maxComment int) (domain.SubmissionStatus, *string, error) {
	var errs []domain.FieldError

	switch {
	case len(i.SubmissionIDs) == 0:
		errs = append(errs, domain.FieldError{Field: "submission_ids", Message: "at least one required"})
	case len(i.SubmissionIDs) > maxItems:
		errs = append(errs, domain.FieldError{Field: "submission_ids", Message: "too many items"})
	}

	seen := make(map[uuid.UUID]struct{}, len(i.SubmissionIDs))
	for _, id := range i.SubmissionIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "submission_ids", Message: "contains empty id"})
			break
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, domain.FieldError{Field: "submission_ids", Message: "contains duplicates"})
			break
		}
		seen[id] = struct{}{}
	}

	target := domain.SubmissionStatus(strings.ToUpper(strings.TrimSpace(i.TargetStatus)))
	if !target.IsValid() {
		errs = append(errs, domain.FieldError{Field: "target_status", Message: "unknown status"})
	}

	comment := trimOrNil(i.Comment)
	if comment != nil && utf8.RuneCountInString(*comment) > maxComment {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "too long"})
	}

	if len(errs) > 0 {
		return "", nil, domain.NewValidationErrors(errs)
	}
	return target, comment, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
