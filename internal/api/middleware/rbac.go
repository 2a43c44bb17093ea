package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/openforum/forum-api/internal/api/metrics"
	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/service"
)

// RBAC enforces role-based access control on top of Auth. It re-enters the
// authorization gate with the identity Auth stored, so a route without Auth
// in front of it is refused as unauthenticated. Behind Auth, its decision
// replaces the one Auth holds and Auth counts it when the request ends.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := Identity(c)
			if u == nil {
				metrics.GateDecisionsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrInvalidToken
			}

			result := domain.Authenticated(u)
			_, err := service.Authorize(result, allowedRoles...)
			if _, behindAuth := c.Get(decisionKey).(string); behindAuth {
				c.Set(decisionKey, decision(result, err))
			} else {
				metrics.GateDecisionsTotal.WithLabelValues(decision(result, err)).Inc()
			}
			if err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireAdmin admits administrators only.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}

// RequireModerator admits moderators and administrators.
func RequireModerator() echo.MiddlewareFunc {
	return RBAC(service.RolesAtLeast(domain.RoleModerator)...)
}
