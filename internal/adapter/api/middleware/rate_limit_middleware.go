package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"campustrade/internal/infrastructure/ratelimit"
	"campustrade/pkg/errors"
	"campustrade/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit guards a route group with the named action's bucket. Must run after
// Authenticate so the uid is on the context.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}

			allowed, retryAfter := m.limiter.Allow(uid, action)
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded, slow down"))
			}

			return next(c)
		}
	}
}
