package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/neha222222/property-listing-system/utils"
)

// RateLimit budgets requests per client IP with a fixed window counter in
// redis, so the limit holds across server instances. The counter INCR is
// atomic; the window key expires on its own. When redis is unreachable the
// limiter fails open rather than taking the API down with it.
func RateLimit(client *redis.Client, max int, window time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "ratelimit:" + c.RealIP()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				return next(c)
			}
			if count == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn("rate limiter expire failed", zap.Error(err))
				}
			}
			if count > int64(max) {
				return &utils.ApiError{
					StatusCode: http.StatusTooManyRequests,
					Message:    "Too many requests, please try again later",
				}
			}
			return next(c)
		}
	}
}
