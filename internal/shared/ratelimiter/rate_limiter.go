// Package ratelimiter provides a fixed-window request limiter used to slow
// down credential guessing on the sign-in endpoints.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window tracks the request count for one client inside the current interval.
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter caps the number of requests per client key per interval.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	clients map[string]*window
}

// NewRateLimiter creates a new RateLimiter allowing limit requests per
// interval for each client key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		clients:  make(map[string]*window),
	}
}

// Allow reports whether the client identified by key may proceed. The count
// resets once the interval has elapsed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.clients[key] = &window{count: 1, lastReset: now}
		return true
	}

	w.count++
	return w.count <= rl.limit
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"title":  "Too Many Requests",
				"status": http.StatusTooManyRequests,
				"detail": "Too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
