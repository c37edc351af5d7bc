package middleware

import (
	"sync"
	"time"

	appErrors "github.com/Toston-App/lake-sub000/internal/errors"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding window limiter keyed by owner or client address.
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Cleanup drops expired keys every interval until stop is closed.
func (rl *RateLimiter) Cleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}

func (rl *RateLimiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := rl.now().Add(-rl.window)
	for key, timestamps := range rl.requests {
		valid := recent(timestamps, windowStart)
		if len(valid) == 0 {
			delete(rl.requests, key)
		} else {
			rl.requests[key] = valid
		}
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := recent(rl.requests[key], now.Add(-rl.window))

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

func recent(timestamps []time.Time, windowStart time.Time) []time.Time {
	var valid []time.Time
	for _, t := range timestamps {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

// RateLimitByOwner limits requests per owner, falling back to the client IP.
func RateLimitByOwner(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get(UserIDKey); exists {
			if id, ok := userID.(string); ok {
				key = id
			}
		}

		if !limiter.Allow(key) {
			abort(c, appErrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
