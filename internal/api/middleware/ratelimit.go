package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/api/metrics"
	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

// RateLimit throttles a route per client IP. The limiter fails open: backend
// errors are logged and the request proceeds.
func RateLimit(scope string, limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := scope + ":" + c.RealIP()
			ok, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
