package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("requests under the limit pass", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.Allow("10.0.0.1") {
				t.Fatalf("request %d should be allowed", i+1)
			}
		}
	})

	t.Run("requests over the limit are rejected", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)

		rl.Allow("10.0.0.1")
		rl.Allow("10.0.0.1")
		if rl.Allow("10.0.0.1") {
			t.Error("third request should be rejected")
		}
	})

	t.Run("clients are counted independently", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		rl.Allow("10.0.0.1")
		if !rl.Allow("10.0.0.2") {
			t.Error("another client should not share the window")
		}
	})

	t.Run("the window resets after the interval", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		rl.Allow("10.0.0.1")
		time.Sleep(20 * time.Millisecond)
		if !rl.Allow("10.0.0.1") {
			t.Error("request after the interval should be allowed")
		}
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, time.Minute)
	router := gin.New()
	router.POST("/signin", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signin", nil)
		router.ServeHTTP(w, req)
		return w
	}

	if w := do(); w.Code != http.StatusOK {
		t.Errorf("first request: expected 200, got %d", w.Code)
	}
	if w := do(); w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", w.Code)
	}
}
