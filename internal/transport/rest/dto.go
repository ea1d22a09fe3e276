package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/internal/service/achievement"
	"github.com/heartmarshall/storyflow-backend/internal/service/workflow"
)

type submissionResponse struct {
	ID                uuid.UUID  `json:"id"`
	AuthorID          uuid.UUID  `json:"authorId"`
	Source            string     `json:"source"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Status            string     `json:"status"`
	ReviewNotes       *string    `json:"reviewNotes,omitempty"`
	BookDecision      *string    `json:"bookDecision,omitempty"`
	PublicationFormat *string    `json:"publicationFormat,omitempty"`
	RevisionNo        int        `json:"revisionNo"`
	StoryManagerID    *uuid.UUID `json:"storyManagerId,omitempty"`
	BookManagerID     *uuid.UUID `json:"bookManagerId,omitempty"`
	ContentAdminID    *uuid.UUID `json:"contentAdminId,omitempty"`
	Version           int        `json:"version"`
	PublishedAt       *time.Time `json:"publishedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func toSubmissionResponse(s *domain.Submission) submissionResponse {
	resp := submissionResponse{
		ID:             s.ID,
		AuthorID:       s.AuthorID,
		Source:         string(s.Source),
		Title:          s.Title,
		Content:        s.Content,
		Status:         string(s.Status),
		ReviewNotes:    s.ReviewNotes,
		RevisionNo:     s.RevisionNo,
		StoryManagerID: s.StoryManagerID,
		BookManagerID:  s.BookManagerID,
		ContentAdminID: s.ContentAdminID,
		Version:        s.Version,
		PublishedAt:    s.PublishedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.BookDecision != nil {
		v := string(*s.BookDecision)
		resp.BookDecision = &v
	}
	if s.PublicationFormat != nil {
		v := string(*s.PublicationFormat)
		resp.PublicationFormat = &v
	}
	return resp
}

func toSubmissionResponses(subs []domain.Submission) []submissionResponse {
	out := make([]submissionResponse, len(subs))
	for i := range subs {
		out[i] = toSubmissionResponse(&subs[i])
	}
	return out
}

type transitionResponse struct {
	ID            uuid.UUID                  `json:"id"`
	SubmissionID  uuid.UUID                  `json:"submissionId"`
	FromStatus    string                     `json:"fromStatus"`
	ToStatus      string                     `json:"toStatus"`
	Action        string                     `json:"action"`
	Comment       *string                    `json:"comment,omitempty"`
	PerformedByID uuid.UUID                  `json:"performedById"`
	Metadata      *domain.TransitionMetadata `json:"metadata,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
}

func toTransitionResponse(t domain.Transition) transitionResponse {
	resp := transitionResponse{
		ID:            t.ID,
		SubmissionID:  t.SubmissionID,
		FromStatus:    string(t.FromStatus),
		ToStatus:      string(t.ToStatus),
		Action:        string(t.Action),
		Comment:       t.Comment,
		PerformedByID: t.PerformedByID,
		CreatedAt:     t.CreatedAt,
	}
	if !t.Metadata.IsZero() {
		resp.Metadata = t.Metadata
	}
	return resp
}

type availableActionResponse struct {
	Action           string `json:"action"`
	To               string `json:"to"`
	RequiresFeedback bool   `json:"requiresFeedback"`
}

func toAvailableActions(actions []workflow.AvailableAction) []availableActionResponse {
	out := make([]availableActionResponse, len(actions))
	for i, a := range actions {
		out[i] = availableActionResponse{Action: string(a.Action), To: string(a.To), RequiresFeedback: a.RequiresFeedback}
	}
	return out
}

type commentResponse struct {
	ID           uuid.UUID         `json:"id"`
	SubmissionID uuid.UUID         `json:"submissionId"`
	AuthorID     uuid.UUID         `json:"authorId"`
	ParentID     *uuid.UUID        `json:"parentId,omitempty"`
	Content      string            `json:"content"`
	Status       string            `json:"status"`
	IsResolved   bool              `json:"isResolved"`
	ResolvedAt   *time.Time        `json:"resolvedAt,omitempty"`
	ResolvedByID *uuid.UUID        `json:"resolvedById,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Replies      []commentResponse `json:"replies,omitempty"`
}

func toCommentResponse(c *domain.Comment) commentResponse {
	resp := commentResponse{
		ID:           c.ID,
		SubmissionID: c.SubmissionID,
		AuthorID:     c.AuthorID,
		ParentID:     c.ParentID,
		Content:      c.Content,
		Status:       string(c.Status),
		IsResolved:   c.IsResolved,
		ResolvedAt:   c.ResolvedAt,
		ResolvedByID: c.ResolvedByID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for i := range c.Replies {
		resp.Replies = append(resp.Replies, toCommentResponse(&c.Replies[i]))
	}
	return resp
}

type notificationResponse struct {
	ID        uuid.UUID          `json:"id"`
	Type      string             `json:"type"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	DataKind  domain.PayloadKind `json:"dataKind,omitempty"`
	Data      domain.Payload     `json:"data,omitempty"`
	Read      bool               `json:"read"`
	ReadAt    *time.Time         `json:"readAt,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	resp := notificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.Data != nil {
		resp.DataKind = n.Data.Kind()
	}
	return resp
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

type achievementResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Counter     string     `json:"counter"`
	Threshold   int        `json:"threshold"`
	XPReward    int        `json:"xpReward"`
	Current     int        `json:"current"`
	Earned      bool       `json:"earned"`
	AwardedAt   *time.Time `json:"awardedAt,omitempty"`
}

type achievementsResponse struct {
	Achievements []achievementResponse `json:"achievements"`
	Stats        map[string]int        `json:"stats"`
	EarnedXP     int                   `json:"earnedXp"`
}

func toAchievementsResponse(sum *achievement.Summary) achievementsResponse {
	resp := achievementsResponse{
		Achievements: make([]achievementResponse, len(sum.Progress)),
		Stats:        make(map[string]int, len(sum.Stats)),
		EarnedXP:     sum.EarnedXP,
	}
	for i, p := range sum.Progress {
		a := p.Achievement
		resp.Achievements[i] = achievementResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Counter:     string(a.Counter),
			Threshold:   a.Threshold,
			XPReward:    a.XPReward,
			Current:     p.Current,
			Earned:      p.Earned,
			AwardedAt:   p.AwardedAt,
		}
	}
	for k, v := range sum.Stats {
		resp.Stats[string(k)] = v
	}
	return resp
}
