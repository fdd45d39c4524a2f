package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newLimiter(max int, per time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := NewRateLimiter(max, per)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterWithinLimit(t *testing.T) {
	rl, _ := newLimiter(5, time.Minute)
	for i := 0; i < 5; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiterOverLimit(t *testing.T) {
	rl, _ := newLimiter(2, time.Minute)
	rl.allow("1.2.3.4")
	rl.allow("1.2.3.4")
	if rl.allow("1.2.3.4") {
		t.Fatal("should be rate limited")
	}
}

func TestRateLimiterTokenRefill(t *testing.T) {
	rl, clock := newLimiter(1, time.Minute)
	rl.allow("1.2.3.4")
	if rl.allow("1.2.3.4") {
		t.Fatal("should be rate limited immediately")
	}
	clock.advance(61 * time.Second)
	if !rl.allow("1.2.3.4") {
		t.Fatal("token should have refilled")
	}
}

func TestRateLimiterDifferentIPs(t *testing.T) {
	rl, _ := newLimiter(1, time.Minute)
	rl.allow("1.1.1.1")
	if !rl.allow("2.2.2.2") {
		t.Fatal("different IP should have its own bucket")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, clock := newLimiter(1, time.Minute)
	rl.allow("1.1.1.1")
	clock.advance(11 * time.Minute)
	rl.allow("2.2.2.2")

	rl.cleanup(10 * time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["1.1.1.1"]; ok {
		t.Fatal("expected idle client to be dropped")
	}
	if _, ok := rl.clients["2.2.2.2"]; !ok {
		t.Fatal("expected recent client to be kept")
	}
}

func TestRateLimiterRunCleanupStops(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.RunCleanup(ctx, time.Millisecond, time.Minute)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop after cancel")
	}
}

func TestRateLimiterMiddleware429(t *testing.T) {
	rl, _ := newLimiter(1, time.Minute)

	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/api/custom-orders", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodPost, "/api/custom-orders", nil))
	if w1.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/api/custom-orders", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
}
