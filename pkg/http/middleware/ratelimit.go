package middleware

import (
	"net/http"

	"KIndex/internal/service/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimit throttles requests per client IP using a token bucket.
func RateLimit(l *ratelimit.Limiter, capacity, refillPerSec float64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP(), capacity, refillPerSec) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": "Too Many Requests",
				})
			}
			return next(c)
		}
	}
}
