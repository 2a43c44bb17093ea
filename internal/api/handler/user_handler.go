package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the caller's account with participation stats.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	view, err := h.users.Profile(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: view.User, Stats: view.Stats})
}

// UpdateProfile edits the caller's username, bio or avatar.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), me.ID, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "profile updated successfully", User: user})
}

// Get returns the public profile of any user.
//
// @Summary      Public user profile
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  publicProfileResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	view, err := h.users.PublicProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicProfileResponse(view))
}

// List returns the newest accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max results (default 20, max 100)"
// @Success      200    {object}  userListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	list, err := h.users.List(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	users := list.Users
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users, Total: list.Total, Limit: list.Limit})
}

// ChangeRole sets a user's role.
//
// @Summary      Change user role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.Request().Context(), me.ID, c.Param("id"), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "user role updated successfully", User: user})
}

// ChangeStatus bans or reinstates a user.
//
// @Summary      Change user status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User ID"
// @Param        body  body      changeStatusRequest  true  "New status"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id}/status [put]
func (h *UserHandler) ChangeStatus(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.ChangeStatus(c.Request().Context(), me.ID, c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	msg := "user banned successfully"
	if user.IsActive {
		msg = "user activated successfully"
	}
	return c.JSON(http.StatusOK, userResponse{Message: msg, User: user})
}
