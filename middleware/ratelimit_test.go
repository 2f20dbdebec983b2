package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neha222222/property-listing-system/utils"
)

func limiterRequest(t *testing.T, handler echo.HandlerFunc, mw echo.MiddlewareFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	return mw(handler)(c)
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRateLimitEnforcesBudget(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	mw := RateLimit(client, 2, time.Minute, zap.NewNop())

	require.NoError(t, limiterRequest(t, okHandler, mw))
	require.NoError(t, limiterRequest(t, okHandler, mw))

	err := limiterRequest(t, okHandler, mw)
	require.Error(t, err)
	var apiErr *utils.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestRateLimitWindowResets(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	mw := RateLimit(client, 1, time.Minute, zap.NewNop())

	require.NoError(t, limiterRequest(t, okHandler, mw))
	require.Error(t, limiterRequest(t, okHandler, mw))

	srv.FastForward(2 * time.Minute)
	assert.NoError(t, limiterRequest(t, okHandler, mw))
}

func TestRateLimitFailsOpen(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	srv.Close()

	mw := RateLimit(client, 1, time.Minute, zap.NewNop())

	// Redis down must not take the API with it.
	assert.NoError(t, limiterRequest(t, okHandler, mw))
	assert.NoError(t, limiterRequest(t, okHandler, mw))
}
