package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette-backend/internal/middleware"
)

type fakeLimiter struct {
	allowed bool
	err     error

	subject string
	action  string
	limit   int
	window  time.Duration
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, subject, action string, limit int, window time.Duration) (bool, error) {
	f.subject, f.action, f.limit, f.window = subject, action, limit, window
	return f.allowed, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": middleware.RequestIDFrom(c)})
	})
	router.POST("/spin", handlers...)
	return router
}

func TestRateLimitAllowed(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	router := newRouter(middleware.RateLimit(limiter, "spin", 30, time.Minute))

	req := httptest.NewRequest(http.MethodPost, "/spin", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "192.0.2.7", limiter.subject)
	assert.Equal(t, "spin", limiter.action)
	assert.Equal(t, 30, limiter.limit)
	assert.Equal(t, time.Minute, limiter.window)
}

func TestRateLimitDenied(t *testing.T) {
	router := newRouter(middleware.RateLimit(&fakeLimiter{allowed: false}, "spin", 30, time.Minute))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/spin", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body["code"])
	assert.Equal(t, float64(60), body["retry_after"])
}

func TestRateLimitBackendError(t *testing.T) {
	router := newRouter(middleware.RateLimit(&fakeLimiter{err: errors.New("connection refused")}, "spin", 30, time.Minute))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/spin", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestRequestID(t *testing.T) {
	router := newRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/spin", nil))

	generated := w.Header().Get(middleware.HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Contains(t, w.Body.String(), generated)

	req := httptest.NewRequest(http.MethodPost, "/spin", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CORS())
	router.POST("/spin", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/spin", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
