package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/server/handlers"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(t0)
	limiter := NewRateLimiter(rate, window, clk)
	t.Cleanup(limiter.Stop)
	return limiter, clk
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("Requests over limit are denied", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("user:1"), "request %d should be allowed", i+1)
		}
		assert.False(t, limiter.Allow("user:1"), "request over limit should be denied")
	})

	t.Run("Different keys are tracked separately", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 1, time.Minute)

		assert.True(t, limiter.Allow("user:1"))
		assert.False(t, limiter.Allow("user:1"))
		assert.True(t, limiter.Allow("user:2"))
	})

	t.Run("Tokens refill after window expires", func(t *testing.T) {
		limiter, clk := newTestLimiter(t, 2, time.Minute)

		assert.True(t, limiter.Allow("user:1"))
		assert.True(t, limiter.Allow("user:1"))
		assert.False(t, limiter.Allow("user:1"))

		clk.Advance(time.Minute)

		assert.True(t, limiter.Allow("user:1"))
	})
}

func TestRateLimiter_CleanupOldBuckets(t *testing.T) {
	limiter, clk := newTestLimiter(t, 5, time.Minute)

	limiter.Allow("user:old")
	clk.Advance(90 * time.Second)
	limiter.Allow("user:fresh")
	clk.Advance(40 * time.Second)

	limiter.cleanupOldBuckets()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.buckets, "user:old")
	assert.Contains(t, limiter.buckets, "user:fresh")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, nil)
	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter, _ := newTestLimiter(t, 2, time.Minute)
	handler := RateLimitMiddleware(limiter, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/push", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		if userID != "" {
			req = req.WithContext(handlers.WithUserID(req.Context(), userID))
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, request("alice").Code)
	assert.Equal(t, http.StatusOK, request("alice").Code)

	blocked := request("alice")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "rate limit exceeded")

	// Тот же IP, другой пользователь - отдельный лимит
	assert.Equal(t, http.StatusOK, request("bob").Code)

	// Без пользователя ключом служит IP
	assert.Equal(t, http.StatusOK, request("").Code)
}

func TestRateLimitMiddleware_LogsExceededRequests(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	limiter, _ := newTestLimiter(t, 1, time.Minute)
	handler := RateLimitMiddleware(limiter, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/pull", nil)
		req = req.WithContext(handlers.WithUserID(req.Context(), "alice"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Contains(t, logBuf.String(), "Rate limit exceeded")
	assert.Contains(t, logBuf.String(), "user:alice")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For single IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.1",
		},
		{
			name:       "X-Forwarded-For chain takes first",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.1",
		},
		{
			name:       "X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.5"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "10.0.0.1:1234",
			expected:   "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
