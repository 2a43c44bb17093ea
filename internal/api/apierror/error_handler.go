// Package apierror renders every API error as {"message": "..."} with a
// status code derived from the domain error taxonomy.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/core/domain"
)

// Response is the canonical error envelope for all API errors.
type Response struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := Resolve(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

// Resolve maps err onto a status code and response body.
func Resolve(err error, log zerolog.Logger, c echo.Context) (int, Response) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, Response{Message: "validation failed", Errors: ve.Fields}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, Response{Message: fmt.Sprintf("%v", he.Message)}
	}

	if code, ok := Status(err); ok {
		return code, Response{Message: Message(err)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, Response{Message: "internal server error"}
}

// Status returns the HTTP status for a known domain error.
func Status(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		return 0, false
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUnknownIdentity):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrAccountInactive):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrCategoryExists):
		return http.StatusConflict, true
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, true
	}
	return 0, false
}

// Message returns the client-facing text for a known domain error.
func Message(err error) string {
	for _, known := range []error{
		domain.ErrUserNotFound,
		domain.ErrInvalidCredentials,
		domain.ErrInvalidToken,
		domain.ErrUnknownIdentity,
		domain.ErrMissingCredentials,
		domain.ErrForbidden,
		domain.ErrAccountInactive,
		domain.ErrInvalidRole,
		domain.ErrInvalidID,
		domain.ErrPasswordTooLong,
		domain.ErrCategoryNotFound,
		domain.ErrAccountNotFound,
		domain.ErrUserExists,
		domain.ErrUsernameTaken,
		domain.ErrCategoryExists,
		domain.ErrRateLimited,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
