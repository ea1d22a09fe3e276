package achievement

import "github.com/heartmarshall/storyflow-backend/internal/domain"

// Catalog is the static list of achievements, ordered for display.
var Catalog = []domain.Achievement{
	{ID: "first_submission", Name: "First Steps", Description: "Submit your first story", Counter: domain.CounterSubmissions, Threshold: 1, XPReward: 50},
	{ID: "first_story", Name: "Published Author", Description: "Get your first story published", Counter: domain.CounterStoriesPublished, Threshold: 1, XPReward: 100},
	{ID: "prolific_author", Name: "Prolific Author", Description: "Get 5 stories published", Counter: domain.CounterStoriesPublished, Threshold: 5, XPReward: 500},
	{ID: "first_book", Name: "First Book", Description: "Finish reading your first book", Counter: domain.CounterBooksCompleted, Threshold: 1, XPReward: 50},
	{ID: "bookworm", Name: "Bookworm", Description: "Finish reading 10 books", Counter: domain.CounterBooksCompleted, Threshold: 10, XPReward: 300},
	{ID: "vocabulary_10", Name: "Word Collector", Description: "Learn 10 words", Counter: domain.CounterWordsLearned, Threshold: 10, XPReward: 50},
	{ID: "vocabulary_50", Name: "Word Builder", Description: "Learn 50 words", Counter: domain.CounterWordsLearned, Threshold: 50, XPReward: 150},
	{ID: "vocabulary_100", Name: "Word Master", Description: "Learn 100 words", Counter: domain.CounterWordsLearned, Threshold: 100, XPReward: 300},
	{ID: "quiz_master_10", Name: "Quiz Master", Description: "Pass 10 quizzes", Counter: domain.CounterQuizzesPassed, Threshold: 10, XPReward: 200},
	{ID: "discussion_starter", Name: "Discussion Starter", Description: "Post your first comment", Counter: domain.CounterComments, Threshold: 1, XPReward: 25},
	{ID: "social_butterfly", Name: "Social Butterfly", Description: "Post 25 comments", Counter: domain.CounterComments, Threshold: 25, XPReward: 150},
}

// counterDelta maps an event to the counter it moves and by how much.
var counterDelta = map[domain.EventType]struct {
	counter domain.StatCounter
	delta   int
}{
	domain.EventSubmissionSubmitted: {domain.CounterSubmissions, 1},
	domain.EventSubmissionPublished: {domain.CounterStoriesPublished, 1},
	domain.EventBookCompleted:       {domain.CounterBooksCompleted, 1},
	domain.EventWordLearned:         {domain.CounterWordsLearned, 1},
	domain.EventWordForgotten:       {domain.CounterWordsLearned, -1},
	domain.EventQuizCompleted:       {domain.CounterQuizzesPassed, 1},
	domain.EventCommentPosted:       {domain.CounterComments, 1},
}

// reached returns the catalog entries on counter whose threshold is at or
// below value.
func reached(counter domain.StatCounter, value int) []domain.Achievement {
	var out []domain.Achievement
	for _, a := range Catalog {
		if a.Counter == counter && value >= a.Threshold {
			out = append(out, a)
		}
	}
	return out
}
