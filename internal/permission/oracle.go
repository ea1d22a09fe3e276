// Package permission is the single source of role-based rules for the
// publication workflow: which transitions a role may apply, which statuses
// an admin may set directly, and who may see or annotate a submission.
//
// Everything here is a pure function over static tables. Unknown roles get
// the empty permission set.
package permission

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

// Rule is one allowed (role, from, action) triple and its outcome.
type Rule struct {
	Role   domain.UserRole
	From   domain.SubmissionStatus
	Action domain.WorkflowAction
	To     domain.SubmissionStatus

	// AuthorOnly restricts the rule to the submission's author.
	AuthorOnly bool

	// RequiresFeedback means the reviewer must explain the decision.
	RequiresFeedback bool
}

type ruleKey struct {
	role   domain.UserRole
	from   domain.SubmissionStatus
	action domain.WorkflowAction
}

var (
	authorRoles   = []domain.UserRole{domain.RoleLearner, domain.RoleTeacher, domain.RoleWriter, domain.RoleVolunteer}
	managerRoles  = []domain.UserRole{domain.RoleContentAdmin, domain.RoleAdmin}
	reviewerRoles = []domain.UserRole{domain.RoleStoryManager, domain.RoleBookManager, domain.RoleContentAdmin, domain.RoleAdmin}
)

// rules is the transition table in pipeline order.
var rules = buildRules()

var ruleIndex = indexRules(rules)

func buildRules() []Rule {
	var out []Rule
	add := func(roles []domain.UserRole, from domain.SubmissionStatus, action domain.WorkflowAction, to domain.SubmissionStatus, authorOnly, feedback bool) {
		for _, role := range roles {
			out = append(out, Rule{
				Role:             role,
				From:             from,
				Action:           action,
				To:               to,
				AuthorOnly:       authorOnly,
				RequiresFeedback: feedback,
			})
		}
	}
	sm := []domain.UserRole{domain.RoleStoryManager}
	bm := []domain.UserRole{domain.RoleBookManager}

	// Author stage.
	add(authorRoles, domain.StatusDraft, domain.ActionSubmit, domain.StatusPending, true, false)
	add(authorRoles, domain.StatusNeedsRevision, domain.ActionResubmit, domain.StatusPending, true, false)

	// Story-manager stage.
	add(sm, domain.StatusPending, domain.ActionApprove, domain.StatusStoryApproved, false, false)
	add(sm, domain.StatusPending, domain.ActionReject, domain.StatusArchived, false, true)
	add(sm, domain.StatusPending, domain.ActionRequestRevision, domain.StatusNeedsRevision, false, true)

	// Coordination and format decision.
	add(managerRoles, domain.StatusStoryApproved, domain.ActionAssignFormatReview, domain.StatusFormatReview, false, false)
	add(bm, domain.StatusFormatReview, domain.ActionFormatDecision, domain.StatusContentReview, false, false)

	// Content review.
	add(managerRoles, domain.StatusContentReview, domain.ActionApprove, domain.StatusApproved, false, false)
	add(managerRoles, domain.StatusContentReview, domain.ActionRequestRevision, domain.StatusNeedsRevision, false, true)
	add(managerRoles, domain.StatusContentReview, domain.ActionReject, domain.StatusRejected, false, true)

	// Book-manager stage.
	add(bm, domain.StatusApproved, domain.ActionApprove, domain.StatusApproved, false, false)
	add(bm, domain.StatusApproved, domain.ActionRequestRevision, domain.StatusNeedsRevision, false, true)

	// Final publication.
	add(managerRoles, domain.StatusApproved, domain.ActionPublish, domain.StatusPublished, false, false)
	add(managerRoles, domain.StatusApproved, domain.ActionRequestRevision, domain.StatusNeedsRevision, false, true)
	add(managerRoles, domain.StatusApproved, domain.ActionReject, domain.StatusArchived, false, true)

	// Archive.
	for _, from := range domain.AllSubmissionStatuses {
		if from.IsTerminal() {
			continue
		}
		add(managerRoles, from, domain.ActionArchive, domain.StatusArchived, false, false)
	}
	add([]domain.UserRole{domain.RoleAdmin}, domain.StatusPublished, domain.ActionArchive, domain.StatusArchived, false, false)

	return out
}

func indexRules(rs []Rule) map[ruleKey]Rule {
	idx := make(map[ruleKey]Rule, len(rs))
	for _, r := range rs {
		k := ruleKey{role: r.Role, from: r.From, action: r.Action}
		if _, dup := idx[k]; dup {
			panic(fmt.Sprintf("permission: duplicate rule %s/%s/%s", r.Role, r.From, r.Action))
		}
		idx[k] = r
	}
	return idx
}

// Rules returns a copy of the transition table.
func Rules() []Rule {
	return slices.Clone(rules)
}

// Lookup returns the rule for (role, from, action), if one exists.
func Lookup(role domain.UserRole, from domain.SubmissionStatus, action domain.WorkflowAction) (Rule, bool) {
	r, ok := ruleIndex[ruleKey{role: role, from: from, action: action}]
	return r, ok
}

// CanTransition reports whether role may apply action to a submission in from.
// Author-only rules still require the caller to check authorship.
func CanTransition(role domain.UserRole, from domain.SubmissionStatus, action domain.WorkflowAction) bool {
	_, ok := Lookup(role, from, action)
	return ok
}

// HasAction reports whether role may apply action from at least one status.
// It is the role gate checked before the submission is loaded.
func HasAction(role domain.UserRole, action domain.WorkflowAction) bool {
	for _, r := range rules {
		if r.Role == role && r.Action == action {
			return true
		}
	}
	return false
}

// ActionsFor returns the rules role may apply to a submission in from,
// in pipeline order.
func ActionsFor(role domain.UserRole, from domain.SubmissionStatus) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Role == role && r.From == from {
			out = append(out, r)
		}
	}
	return out
}

var contentAdminTargets = []domain.SubmissionStatus{
	domain.StatusPending,
	domain.StatusStoryReview,
	domain.StatusNeedsRevision,
	domain.StatusStoryApproved,
	domain.StatusFormatReview,
	domain.StatusContentReview,
	domain.StatusApproved,
	domain.StatusArchived,
	domain.StatusRejected,
}

var bulkTargets = map[domain.UserRole][]domain.SubmissionStatus{
	domain.RoleAdmin:        domain.AllSubmissionStatuses,
	domain.RoleContentAdmin: contentAdminTargets,
}

// AllowedTargetStatuses returns the statuses role may set directly through
// bulk mutation.
func AllowedTargetStatuses(role domain.UserRole) []domain.SubmissionStatus {
	return slices.Clone(bulkTargets[role])
}

// CanSetStatus reports whether role may set target through bulk mutation.
func CanSetStatus(role domain.UserRole, target domain.SubmissionStatus) bool {
	return slices.Contains(bulkTargets[role], target)
}

// adminQueue is every status past the author's draft.
var adminQueue = slices.DeleteFunc(slices.Clone(domain.AllSubmissionStatuses), func(s domain.SubmissionStatus) bool {
	return s == domain.StatusDraft
})

var reviewQueues = map[domain.UserRole][]domain.SubmissionStatus{
	domain.RoleStoryManager: {domain.StatusPending, domain.StatusStoryReview},
	domain.RoleBookManager:  {domain.StatusFormatReview, domain.StatusApproved},
	domain.RoleContentAdmin: {domain.StatusStoryApproved, domain.StatusContentReview, domain.StatusApproved},
	domain.RoleAdmin:        adminQueue,
}

// ReviewQueueStatuses returns the statuses shown in role's review queue.
func ReviewQueueStatuses(role domain.UserRole) []domain.SubmissionStatus {
	return slices.Clone(reviewQueues[role])
}

// IsReviewer reports whether role takes part in review.
func IsReviewer(role domain.UserRole) bool {
	return slices.Contains(reviewerRoles, role)
}

// IsAdmin reports whether role has unrestricted moderation rights.
func IsAdmin(role domain.UserRole) bool {
	return role == domain.RoleAdmin
}

// CanDeleteAnySubmission reports whether role may remove submissions it did
// not author, in any status.
func CanDeleteAnySubmission(role domain.UserRole) bool {
	return role == domain.RoleAdmin || role == domain.RoleContentAdmin
}

// CanView reports whether actor may read sub, its history and comments.
func CanView(actor domain.Actor, sub *domain.Submission) bool {
	if sub.IsAuthor(actor.ID) {
		return true
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleContentAdmin:
		return true
	case domain.RoleStoryManager, domain.RoleBookManager:
		return sub.IsAssigned(actor.ID) || slices.Contains(reviewQueues[actor.Role], sub.Status)
	}
	return false
}

// CanComment reports whether actor may add feedback to sub.
func CanComment(actor domain.Actor, sub *domain.Submission) bool {
	if sub.IsAuthor(actor.ID) {
		return true
	}
	return IsReviewer(actor.Role) && CanView(actor, sub)
}

// CanResolveComment reports whether actor may change the resolution of c.
func CanResolveComment(actor domain.Actor, c *domain.Comment, sub *domain.Submission) bool {
	if c.AuthorID == actor.ID || sub.IsAuthor(actor.ID) {
		return true
	}
	return IsReviewer(actor.Role) && CanView(actor, sub)
}

// CanEditComment reports whether actor may change the text of c.
func CanEditComment(actorID uuid.UUID, c *domain.Comment) bool {
	return c.AuthorID == actorID
}

// CanDeleteComment reports whether actor may remove c.
func CanDeleteComment(actor domain.Actor, c *domain.Comment) bool {
	return c.AuthorID == actor.ID || IsAdmin(actor.Role)
}
