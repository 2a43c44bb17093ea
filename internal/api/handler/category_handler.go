package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/forum-api/internal/core/ports"
)

type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List returns active categories sorted by name.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   categoryResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	views, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]categoryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toCategoryResponse(v.Category, v.ThreadCount))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one category.
//
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  categoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	v, err := h.categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(v.Category, v.ThreadCount))
}

// Create adds a category.
//
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat, err := h.categories.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CreatedBy:   me.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(cat, 0))
}

// Update edits a category.
//
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category ID"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  categoryResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat, err := h.categories.Update(c.Request().Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		return err
	}
	v, err := h.categories.Get(c.Request().Context(), cat.ID)
	if err != nil {
		return c.JSON(http.StatusOK, toCategoryResponse(cat, 0))
	}
	return c.JSON(http.StatusOK, toCategoryResponse(v.Category, v.ThreadCount))
}

// Delete deactivates a category. Its threads are kept.
//
// @Summary      Delete category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category deleted successfully"})
}
