package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"washbook/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	calls int
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	s.calls++
	if token == "good-token" {
		return "u1", nil
	}
	return "", errors.New("bad token")
}

func newAuthRouter(verifier TokenVerifier, cache *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(OptionalAuth(verifier, cache))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func get(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptionalAuth(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	verifier := &stubVerifier{}
	r := newAuthRouter(verifier, cache)

	w := get(r, "/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "/whoami", "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
	cached, err := mr.Get(utils.AuthCachePrefix + utils.HashToken("good-token"))
	require.NoError(t, err)
	assert.Equal(t, "u1", cached)

	w = get(r, "/whoami", "Bearer good-token")
	assert.Equal(t, "u1", w.Body.String())
	assert.Equal(t, 1, verifier.calls, "second request is served from the cache")

	w = get(r, "/whoami", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/whoami", "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthWithoutCache(t *testing.T) {
	verifier := &stubVerifier{}
	r := newAuthRouter(verifier, nil)

	get(r, "/whoami", "Bearer good-token")
	w := get(r, "/whoami", "Bearer good-token")
	assert.Equal(t, "u1", w.Body.String())
	assert.Equal(t, 2, verifier.calls)
}

func TestOptionalAuthCacheDown(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()
	r := newAuthRouter(&stubVerifier{}, cache)

	w := get(r, "/whoami", "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter(&stubVerifier{}, nil)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)

	w := get(r, "/private", "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/", "").Code)
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := get(r, "/", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
