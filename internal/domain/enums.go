package domain

// SubmissionStatus is the position of a submission in the publication pipeline.
type SubmissionStatus string

const (
	StatusDraft         SubmissionStatus = "DRAFT"
	StatusPending       SubmissionStatus = "PENDING"
	StatusStoryReview   SubmissionStatus = "STORY_REVIEW"
	StatusNeedsRevision SubmissionStatus = "NEEDS_REVISION"
	StatusStoryApproved SubmissionStatus = "STORY_APPROVED"
	StatusFormatReview  SubmissionStatus = "FORMAT_REVIEW"
	StatusContentReview SubmissionStatus = "CONTENT_REVIEW"
	StatusApproved      SubmissionStatus = "APPROVED"
	StatusPublished     SubmissionStatus = "PUBLISHED"
	StatusArchived      SubmissionStatus = "ARCHIVED"
	StatusRejected      SubmissionStatus = "REJECTED"
)

// AllSubmissionStatuses lists every status in pipeline order.
var AllSubmissionStatuses = []SubmissionStatus{
	StatusDraft,
	StatusPending,
	StatusStoryReview,
	StatusNeedsRevision,
	StatusStoryApproved,
	StatusFormatReview,
	StatusContentReview,
	StatusApproved,
	StatusPublished,
	StatusArchived,
	StatusRejected,
}

func (s SubmissionStatus) String() string { return string(s) }

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusStoryReview, StatusNeedsRevision,
		StatusStoryApproved, StatusFormatReview, StatusContentReview,
		StatusApproved, StatusPublished, StatusArchived, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the happy path.
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case StatusPublished, StatusArchived, StatusRejected:
		return true
	}
	return false
}

// IsEditable reports whether the author may still change title and content.
func (s SubmissionStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusNeedsRevision
}

// UserRole is the role claim supplied by the identity provider.
type UserRole string

const (
	RoleLearner      UserRole = "LEARNER"
	RoleTeacher      UserRole = "TEACHER"
	RoleWriter       UserRole = "WRITER"
	RoleVolunteer    UserRole = "VOLUNTEER"
	RoleInstitution  UserRole = "INSTITUTION"
	RoleStoryManager UserRole = "STORY_MANAGER"
	RoleBookManager  UserRole = "BOOK_MANAGER"
	RoleContentAdmin UserRole = "CONTENT_ADMIN"
	RoleAdmin        UserRole = "ADMIN"
)

// AllUserRoles lists every known role.
var AllUserRoles = []UserRole{
	RoleLearner,
	RoleTeacher,
	RoleWriter,
	RoleVolunteer,
	RoleInstitution,
	RoleStoryManager,
	RoleBookManager,
	RoleContentAdmin,
	RoleAdmin,
}

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case RoleLearner, RoleTeacher, RoleWriter, RoleVolunteer, RoleInstitution,
		RoleStoryManager, RoleBookManager, RoleContentAdmin, RoleAdmin:
		return true
	}
	return false
}

// WorkflowAction is a verb an actor requests against a submission.
type WorkflowAction string

const (
	ActionSubmit             WorkflowAction = "submit"
	ActionResubmit           WorkflowAction = "resubmit"
	ActionApprove            WorkflowAction = "approve"
	ActionReject             WorkflowAction = "reject"
	ActionRequestRevision    WorkflowAction = "request_revision"
	ActionAssignFormatReview WorkflowAction = "assign_format_review"
	ActionFormatDecision     WorkflowAction = "format_decision"
	ActionPublish            WorkflowAction = "publish"
	ActionArchive            WorkflowAction = "archive"

	// ActionSetStatus is recorded for admin bulk status changes. It is not
	// accepted by ApplyTransition.
	ActionSetStatus WorkflowAction = "set_status"
)

// AllWorkflowActions lists the verbs accepted by ApplyTransition.
var AllWorkflowActions = []WorkflowAction{
	ActionSubmit,
	ActionResubmit,
	ActionApprove,
	ActionReject,
	ActionRequestRevision,
	ActionAssignFormatReview,
	ActionFormatDecision,
	ActionPublish,
	ActionArchive,
}

func (a WorkflowAction) String() string { return string(a) }

func (a WorkflowAction) IsValid() bool {
	switch a {
	case ActionSubmit, ActionResubmit, ActionApprove, ActionReject,
		ActionRequestRevision, ActionAssignFormatReview, ActionFormatDecision,
		ActionPublish, ActionArchive:
		return true
	}
	return false
}

// BookDecision is the format stage's call on how the story is packaged.
type BookDecision string

const (
	BookDecisionBook       BookDecision = "BOOK"
	BookDecisionText       BookDecision = "TEXT"
	BookDecisionCollection BookDecision = "COLLECTION"
)

func (d BookDecision) String() string { return string(d) }

func (d BookDecision) IsValid() bool {
	switch d {
	case BookDecisionBook, BookDecisionText, BookDecisionCollection:
		return true
	}
	return false
}

// PublicationFormat is stamped by the book manager on an approved submission.
type PublicationFormat string

const (
	PublicationFormatBook     PublicationFormat = "BOOK"
	PublicationFormatTextOnly PublicationFormat = "TEXT_ONLY"
)

func (f PublicationFormat) String() string { return string(f) }

func (f PublicationFormat) IsValid() bool {
	switch f {
	case PublicationFormatBook, PublicationFormatTextOnly:
		return true
	}
	return false
}

// SubmissionSource is the portal a submission was created from.
type SubmissionSource string

const (
	SourceWriter    SubmissionSource = "WRITER"
	SourceTeacher   SubmissionSource = "TEACHER"
	SourceLearner   SubmissionSource = "LEARNER"
	SourceVolunteer SubmissionSource = "VOLUNTEER"
)

func (s SubmissionSource) String() string { return string(s) }

func (s SubmissionSource) IsValid() bool {
	switch s {
	case SourceWriter, SourceTeacher, SourceLearner, SourceVolunteer:
		return true
	}
	return false
}

// CommentStatus is the resolution state of a feedback comment.
type CommentStatus string

const (
	CommentStatusOpen     CommentStatus = "OPEN"
	CommentStatusResolved CommentStatus = "RESOLVED"
)

func (s CommentStatus) String() string { return string(s) }

func (s CommentStatus) IsValid() bool {
	return s == CommentStatusOpen || s == CommentStatusResolved
}

// NotificationType groups notifications for display and filtering.
type NotificationType string

const (
	NotificationWriter      NotificationType = "WRITER"
	NotificationAssignment  NotificationType = "ASSIGNMENT"
	NotificationComment     NotificationType = "COMMENT"
	NotificationAchievement NotificationType = "ACHIEVEMENT"
	NotificationSystem      NotificationType = "SYSTEM"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationWriter, NotificationAssignment, NotificationComment,
		NotificationAchievement, NotificationSystem:
		return true
	}
	return false
}

// EventType is a lifecycle event the achievement evaluator counts.
type EventType string

const (
	EventSubmissionSubmitted EventType = "SUBMISSION_SUBMITTED"
	EventSubmissionPublished EventType = "SUBMISSION_PUBLISHED"
	EventBookCompleted       EventType = "BOOK_COMPLETED"
	EventWordLearned         EventType = "WORD_LEARNED"
	EventWordForgotten       EventType = "WORD_FORGOTTEN"
	EventQuizCompleted       EventType = "QUIZ_COMPLETED"
	EventCommentPosted       EventType = "COMMENT_POSTED"
)

func (e EventType) String() string { return string(e) }

func (e EventType) IsValid() bool {
	switch e {
	case EventSubmissionSubmitted, EventSubmissionPublished, EventBookCompleted,
		EventWordLearned, EventWordForgotten, EventQuizCompleted, EventCommentPosted:
		return true
	}
	return false
}
