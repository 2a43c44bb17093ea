package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/api/metrics"
	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
	"github.com/openforum/forum-api/internal/core/service"
)

const (
	// identityKey is the echo context key the authenticated user is stored under.
	identityKey = "identity"
	// decisionKey holds the gate decision until the request finishes, so RBAC
	// can overrule Auth and each request is counted once.
	decisionKey = "gate_decision"
)

var (
	errMissingHeader = echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	errInvalidHeader = echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
)

// Auth resolves the bearer token through the token strategy, passes the
// result through the authorization gate and injects the identity into
// context. Rejections and gate refusals are returned as domain errors for the
// central error handler to render.
func Auth(authenticator ports.Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request())
			if err != nil {
				metrics.AuthAttemptsTotal.WithLabelValues("token", "malformed_header").Inc()
				return err
			}

			req := ports.AuthRequest{BearerToken: token}
			result := authenticator.Authenticate(c.Request().Context(), req)
			metrics.AuthAttemptsTotal.WithLabelValues(service.StrategyName(req), outcome(result)).Inc()

			user, err := service.Authorize(result)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues(decision(result, err)).Inc()
				if !service.IsAuthFailure(err) {
					log.Error().Err(err).Str("path", c.Path()).Msg("authentication unavailable")
				}
				return err
			}

			SetIdentity(c, user)
			c.Set(decisionKey, decision(result, nil))
			err = next(c)
			d, _ := c.Get(decisionKey).(string)
			metrics.GateDecisionsTotal.WithLabelValues(d).Inc()
			return err
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidHeader
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errInvalidHeader
	}
	return token, nil
}

// SetIdentity stores the authenticated user on the request context.
func SetIdentity(c echo.Context, u *domain.User) {
	c.Set(identityKey, u)
}

// Identity returns the authenticated user, or nil when the route is not
// behind Auth.
func Identity(c echo.Context) *domain.User {
	u, _ := c.Get(identityKey).(*domain.User)
	return u
}

func outcome(r domain.AuthResult) string {
	if r.OK() {
		return "authenticated"
	}
	return string(r.Reason())
}

func decision(r domain.AuthResult, err error) string {
	switch {
	case err == nil:
		return "authorized"
	case !r.OK():
		return "rejected"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
