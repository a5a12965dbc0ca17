package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResponseCache is an in-memory ResponseCache with glob invalidation.
type fakeResponseCache struct {
	entries map[string]string
}

func newFakeResponseCache() *fakeResponseCache {
	return &fakeResponseCache{entries: make(map[string]string)}
}

func (f *fakeResponseCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.entries[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return v, nil
}

func (f *fakeResponseCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeResponseCache) ClearByPattern(ctx context.Context, pattern string) error {
	for key := range f.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeResponseCache) keysWithPrefix(prefix string) []string {
	var out []string
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out
}

func TestTaskMutationInvalidatesCalendarCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := newFakeResponseCache()
	cm := NewCacheMiddleware(fake, time.Minute)
	userID := uuid.New()

	monthHandlerCalls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	router.GET("/api/calendar/month", cm.CacheResponse(), func(c *gin.Context) {
		monthHandlerCalls++
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"days": 42}})
	})
	router.POST("/api/tasks", cm.CacheInvalidate("tasks:*", "calendar:*"), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": uuid.NewString()}})
	})

	getMonth := func() int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/calendar/month", nil))
		return w.Code
	}

	require.Equal(t, http.StatusOK, getMonth())
	require.Equal(t, 1, monthHandlerCalls)
	require.NotEmpty(t, fake.keysWithPrefix("calendar:"))

	// A repeat read is served from the cache.
	require.Equal(t, http.StatusOK, getMonth())
	assert.Equal(t, 1, monthHandlerCalls)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	// The mutation dropped the calendar view, so the next read recomputes.
	assert.Empty(t, fake.keysWithPrefix("calendar:"))
	require.Equal(t, http.StatusOK, getMonth())
	assert.Equal(t, 2, monthHandlerCalls)
}

func TestFailedMutationKeepsCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := newFakeResponseCache()
	cm := NewCacheMiddleware(fake, time.Minute)
	userID := uuid.New()

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	router.GET("/api/calendar/month", cm.CacheResponse(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"days": 42}})
	})
	router.POST("/api/tasks", cm.CacheInvalidate("tasks:*", "calendar:*"), func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/calendar/month", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, fake.keysWithPrefix("calendar:"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Rejected writes change nothing, so the cached view stays valid.
	assert.NotEmpty(t, fake.keysWithPrefix("calendar:"))
}

func TestCacheKeysAreScopedPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := newFakeResponseCache()
	cm := NewCacheMiddleware(fake, time.Minute)

	router := gin.New()
	router.GET("/api/tasks", func(c *gin.Context) {
		c.Set("user_id", uuid.MustParse(c.GetHeader("X-Test-User")))
	}, cm.CacheResponse(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"tasks": []string{}}})
	})

	for _, id := range []uuid.UUID{uuid.New(), uuid.New()} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("X-Test-User", id.String())
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	// Same resource, different users: two distinct entries.
	assert.Len(t, fake.keysWithPrefix("tasks:"), 2)
}
