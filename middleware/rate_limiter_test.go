package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestMemoryStoreAllow(t *testing.T) {
	store := NewMemoryStore(rate.Every(time.Hour), 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within burst should pass", i+1)
	}

	allowed, err := store.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed, "request beyond burst should be denied")

	// Keys are independent of each other.
	allowed, err = store.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed)
}

type deniedStore struct{}

func (deniedStore) Allow(context.Context, string) (bool, error) { return false, nil }

type brokenStore struct{}

func (brokenStore) Allow(context.Context, string) (bool, error) {
	return false, errors.New("store unavailable")
}

func rateLimitedRequest(t *testing.T, store RateLimitStore) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(store))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitDenied(t *testing.T) {
	w := rateLimitedRequest(t, deniedStore{})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestRateLimitFailsOpen(t *testing.T) {
	w := rateLimitedRequest(t, brokenStore{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
