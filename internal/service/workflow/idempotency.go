package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// idempotencyCache remembers transition results by (actor, submission,
// action, key) for a short window so a retried request returns the first
// result instead of failing with a precondition error. A zero window
// disables it.
type idempotencyCache struct {
	c *cache.Cache
}

func newIdempotencyCache(window time.Duration) *idempotencyCache {
	if window <= 0 {
		return &idempotencyCache{}
	}
	return &idempotencyCache{c: cache.New(window, 2*window)}
}

func idempotencyKey(actorID uuid.UUID, in TransitionInput) string {
	return actorID.String() + ":" + in.SubmissionID.String() + ":" + in.Action + ":" + in.IdempotencyKey
}

func (ic *idempotencyCache) get(actorID uuid.UUID, in TransitionInput) (*TransitionResult, bool) {
	if ic.c == nil || in.IdempotencyKey == "" {
		return nil, false
	}
	v, ok := ic.c.Get(idempotencyKey(actorID, in))
	if !ok {
		return nil, false
	}
	res, ok := v.(*TransitionResult)
	if !ok {
		return nil, false
	}
	return res.clone(), true
}

func (ic *idempotencyCache) put(actorID uuid.UUID, in TransitionInput, res *TransitionResult) {
	if ic.c == nil || in.IdempotencyKey == "" {
		return
	}
	ic.c.SetDefault(idempotencyKey(actorID, in), res.clone())
}

// clone keeps cached results isolated from callers that mutate what they
// were handed.
func (r *TransitionResult) clone() *TransitionResult {
	return &TransitionResult{Submission: r.Submission.Clone(), Transition: r.Transition.Clone()}
}
