package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(RateLimitMiddleware(t.Context(), rps, burst, createTestLogger()))
	router.GET("/asset", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serve(router *gin.Engine, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/asset", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(router, "", "").Code)
	}
}

func TestRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(router, "", "").Code, "Request %d should succeed", i+1)
	}

	w := serve(router, "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)

	assert.Equal(t, http.StatusOK, serve(router, "192.168.1.100:12345", "").Code)
	// Different port, same IP
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "192.168.1.100:12346", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, "192.168.1.101:12345", "").Code)
}

func TestRateLimitMiddleware_HandlesXForwardedFor(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)

	assert.Equal(t, http.StatusOK, serve(router, "", "203.0.113.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, serve(router, "", "203.0.113.2").Code)
}

func TestRateLimiterStore_PruneIdleSince(t *testing.T) {
	store := &rateLimiterStore{rps: 10.0, burst: 20}

	assert.NotNil(t, store.getLimiter("192.168.1.100"))
	assert.NotNil(t, store.getLimiter("192.168.1.101"))

	val, ok := store.limiters.Load("192.168.1.100")
	assert.True(t, ok)
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.pruneIdleSince(time.Now().Add(-limiterIdleTimeout))

	_, ok = store.limiters.Load("192.168.1.100")
	assert.False(t, ok)
	_, ok = store.limiters.Load("192.168.1.101")
	assert.True(t, ok)
}

func TestRateLimiterStore_ReusesLimiterPerIP(t *testing.T) {
	store := &rateLimiterStore{rps: 1.0, burst: 1}
	assert.Same(t, store.getLimiter("10.0.0.1"), store.getLimiter("10.0.0.1"))
}
