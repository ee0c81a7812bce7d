package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiterRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := gin.New()
	r.POST("/issues",
		func(c *gin.Context) { c.Set(ContextUserID, "user-1") },
		IssueRateLimiter(client, "issue-limit", limit),
		func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) },
	)
	return r, mr
}

func TestIssueRateLimiter_AllowsUnderLimit(t *testing.T) {
	r, _ := setupLimiterRouter(t, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestIssueRateLimiter_BlocksOverLimit(t *testing.T) {
	r, _ := setupLimiterRouter(t, 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")
}

func TestIssueRateLimiter_SetsTTLOnFirstHit(t *testing.T) {
	r, mr := setupLimiterRouter(t, 5)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	ttl := mr.TTL("issue-limit:user-1")
	assert.Greater(t, ttl.Seconds(), 0.0)
}

func TestIssueRateLimiter_ResetsAfterWindow(t *testing.T) {
	r, mr := setupLimiterRouter(t, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	mr.FastForward(25 * time.Hour) // past the 24h window

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIssueRateLimiter_RequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := gin.New()
	r.POST("/issues", IssueRateLimiter(client, "issue-limit", 5), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/issues", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
