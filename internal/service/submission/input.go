package submission

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

const maxTitleLength = 200

// CreateInput holds the parameters for CreateDraft.
type CreateInput struct {
	Title   string
	Content string
	// Source defaults to the portal matching the author's role.
	Source *string
}

// UpdateInput holds the parameters for UpdateDraft. Nil fields are left unchanged.
type UpdateInput struct {
	Title   *string
	Content *string
}

// QueueInput narrows a review-queue listing.
type QueueInput struct {
	Status *string
	Search string
	Limit  int
	Offset int
}

func validateText(errs []domain.FieldError, field, v string, maxLen int) []domain.FieldError {
	switch n := utf8.RuneCountInString(v); {
	case strings.TrimSpace(v) == "":
		errs = append(errs, domain.FieldError{Field: field, Message: "required"})
	case n > maxLen:
		errs = append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

func (i CreateInput) parse(role domain.UserRole, maxContent int) (string, string, domain.SubmissionSource, error) {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	errs = validateText(errs, "title", title, maxTitleLength)
	errs = validateText(errs, "content", i.Content, maxContent)

	source := domain.SubmissionSource(role)
	if i.Source != nil {
		source = domain.SubmissionSource(strings.ToUpper(strings.TrimSpace(*i.Source)))
	}
	if !source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "must be WRITER, TEACHER, LEARNER or VOLUNTEER"})
	}

	if len(errs) > 0 {
		return "", "", "", domain.NewValidationErrors(errs)
	}
	return title, i.Content, source, nil
}

func (i UpdateInput) validate(maxContent int) error {
	var errs []domain.FieldError

	if i.Title == nil && i.Content == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}
	if i.Title != nil {
		errs = validateText(errs, "title", strings.TrimSpace(*i.Title), maxTitleLength)
	}
	if i.Content != nil {
		errs = validateText(errs, "content", *i.Content, maxContent)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i QueueInput) parseStatus() (*domain.SubmissionStatus, error) {
	if i.Status == nil {
		return nil, nil
	}
	st := domain.SubmissionStatus(strings.ToUpper(strings.TrimSpace(*i.Status)))
	if !st.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	return &st, nil
}
