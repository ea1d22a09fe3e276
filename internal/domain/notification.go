package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification is a per-recipient message. One row per recipient.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Data      Payload
	Read      bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// PayloadKind discriminates the Payload variants on the wire and in storage.
type PayloadKind string

const (
	PayloadKindTransition  PayloadKind = "transition"
	PayloadKindComment     PayloadKind = "comment"
	PayloadKindAchievement PayloadKind = "achievement"
	PayloadKindOpaque      PayloadKind = "opaque"
)

// Payload is the closed set of notification data shapes.
type Payload interface {
	Kind() PayloadKind
}

// TransitionPayload describes a workflow status change.
type TransitionPayload struct {
	SubmissionID      uuid.UUID          `json:"submissionId"`
	Title             string             `json:"title"`
	Action            WorkflowAction     `json:"action"`
	FromStatus        SubmissionStatus   `json:"fromStatus"`
	ToStatus          SubmissionStatus   `json:"toStatus"`
	Feedback          *string            `json:"feedback,omitempty"`
	BookDecision      *BookDecision      `json:"bookDecision,omitempty"`
	PublicationFormat *PublicationFormat `json:"publicationFormat,omitempty"`
	NextSteps         []string           `json:"nextSteps,omitempty"`
}

func (TransitionPayload) Kind() PayloadKind { return PayloadKindTransition }

// CommentPayload points at a comment on a submission.
type CommentPayload struct {
	SubmissionID uuid.UUID  `json:"submissionId"`
	CommentID    uuid.UUID  `json:"commentId"`
	ParentID     *uuid.UUID `json:"parentId,omitempty"`
	Resolved     bool       `json:"resolved,omitempty"`
}

func (CommentPayload) Kind() PayloadKind { return PayloadKindComment }

// AchievementPayload announces a newly earned achievement.
type AchievementPayload struct {
	AchievementID string `json:"achievementId"`
	Name          string `json:"name"`
	XPReward      int    `json:"xpReward"`
}

func (AchievementPayload) Kind() PayloadKind { return PayloadKindAchievement }

// OpaquePayload carries arbitrary JSON that has no fixed shape.
type OpaquePayload json.RawMessage

func (OpaquePayload) Kind() PayloadKind { return PayloadKindOpaque }

// MarshalJSON keeps the raw bytes as-is.
func (p OpaquePayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(p).MarshalJSON()
}

type payloadEnvelope struct {
	Kind PayloadKind     `json:"kind"`
	Body json.RawMessage `json:"body"`
}

// EncodePayload serializes a payload with its kind tag. A nil payload
// encodes to nil.
func EncodePayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", p.Kind(), err)
	}
	return json.Marshal(payloadEnvelope{Kind: p.Kind(), Body: body})
}

// DecodePayload is the inverse of EncodePayload. Empty input yields nil.
func DecodePayload(raw []byte) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var env payloadEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal payload envelope: %w", err)
	}

	var (
		p   Payload
		err error
	)
	switch env.Kind {
	case PayloadKindTransition:
		var v TransitionPayload
		err = json.Unmarshal(env.Body, &v)
		p = v
	case PayloadKindComment:
		var v CommentPayload
		err = json.Unmarshal(env.Body, &v)
		p = v
	case PayloadKindAchievement:
		var v AchievementPayload
		err = json.Unmarshal(env.Body, &v)
		p = v
	case PayloadKindOpaque:
		p = OpaquePayload(env.Body)
	default:
		return nil, fmt.Errorf("unknown payload kind %q", env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", env.Kind, err)
	}
	return p, nil
}
