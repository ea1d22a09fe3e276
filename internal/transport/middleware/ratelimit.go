package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/heartmarshall/storyflow-backend/internal/config"
	"github.com/heartmarshall/storyflow-backend/pkg/ctxutil"
)

// bucketIdle is how long an untouched bucket is kept.
const bucketIdle = 10 * time.Minute

// RateLimiter is a token bucket per caller. Authenticated requests are
// keyed by user id, anonymous ones by remote IP. Idle buckets expire from
// the cache.
type RateLimiter struct {
	buckets *cache.Cache
	mu      sync.Mutex
	perMin  int
	now     func() time.Time
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter builds a limiter from cfg. A non-positive limit disables it.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 5 * time.Minute
	}
	return &RateLimiter{
		buckets: cache.New(bucketIdle, cleanup),
		perMin:  cfg.RequestsPerMinute,
		now:     time.Now,
	}
}

// Limit returns the rate limiting middleware.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if rl.perMin <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(callerKey(r)) {
			retryAfter := 60/rl.perMin + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(key string) bool {
	b := rl.getBucket(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	maxTokens := float64(rl.perMin)
	now := rl.now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * maxTokens / 60
	if b.tokens > maxTokens {
		b.tokens = maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) getBucket(key string) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.buckets.Get(key); ok {
		b := v.(*bucket)
		rl.buckets.SetDefault(key, b) // refresh expiry
		return b
	}
	b := &bucket{tokens: float64(rl.perMin), lastRefill: rl.now()}
	rl.buckets.SetDefault(key, b)
	return b
}

func callerKey(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
