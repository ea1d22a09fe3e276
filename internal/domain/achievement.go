package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatCounter names a per-user gamification counter.
type StatCounter string

const (
	CounterSubmissions      StatCounter = "submissions"
	CounterStoriesPublished StatCounter = "stories_published"
	CounterBooksCompleted   StatCounter = "books_completed"
	CounterWordsLearned     StatCounter = "words_learned"
	CounterQuizzesPassed    StatCounter = "quizzes_passed"
	CounterComments         StatCounter = "comments_posted"
)

// Event is a completed lifecycle fact fed to the achievement evaluator.
// ID must be stable for the underlying fact so replays are ignored.
type Event struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       EventType
	OccurredAt time.Time
}

// Achievement is a static catalog entry.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Counter     StatCounter
	Threshold   int
	XPReward    int
}

// UserAchievement records that a user earned an achievement.
type UserAchievement struct {
	UserID        uuid.UUID
	AchievementID string
	AwardedAt     time.Time
}

// AchievementProgress is a catalog entry joined with one user's stats.
type AchievementProgress struct {
	Achievement Achievement
	Current     int
	Earned      bool
	AwardedAt   *time.Time
}
