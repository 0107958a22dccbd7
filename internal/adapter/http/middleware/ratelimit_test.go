package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_RejectsAboveBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		statuses = append(statuses, rr.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %v", statuses)
	}
}

func TestRateLimiter_SeparatesClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("client %s should have its own bucket, got %d", addr, rr.Code)
		}
	}
}

func TestRateLimiter_CleanupEvictsIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getLimiter("10.0.0.1")

	rl.Cleanup(0)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) != 0 {
		t.Fatalf("expected idle limiters evicted, have %d", len(rl.limiters))
	}
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")

	if ip := clientIP(req); ip != "203.0.113.5" {
		t.Fatalf("expected first forwarded hop, got %q", ip)
	}
}

func TestCleanupKeepsActive(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.getLimiter("10.0.0.1")

	rl.Cleanup(time.Hour)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) != 1 {
		t.Fatalf("expected active limiter kept, have %d", len(rl.limiters))
	}
}
