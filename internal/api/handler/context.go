package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/forum-api/internal/api/middleware"
	"github.com/openforum/forum-api/internal/core/domain"
)

// currentUser returns the identity injected by the Auth middleware. A nil
// identity means the route was mounted without Auth, which is a wiring bug,
// so it fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	u := middleware.Identity(c)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return u, nil
}
