package handler

import (
	"context"
	"net/http"

	"restaurant-api/internal/domain/model"

	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type CategoryHandler struct {
	uc CategoryService
}

func NewCategoryHandler(uc CategoryService) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/categories")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Category not found")
	}

	out, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success(out))
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, successMessage("Category created successfully", out))
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Category not found")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	out, err := h.uc.UpdateCategory(c.Request().Context(), id, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Category updated successfully", out))
}

func (h *CategoryHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Category not found")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Category deleted successfully", nil))
}
