package handler

import (
	"context"
	"net/http"

	"restaurant-api/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	ListProducts(ctx context.Context, categoryName string) ([]usecase.ProductOutput, error)
	GetProduct(ctx context.Context, productID int64) (usecase.ProductOutput, error)
	CreateProduct(ctx context.Context, in usecase.ProductInput) (usecase.ProductOutput, error)
	UpdateProduct(ctx context.Context, productID int64, in usecase.ProductInput) (usecase.ProductOutput, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

// /products のAPI
type ProductHandler struct {
	uc ProductService
}

// DI
func NewProductHandler(uc ProductService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// priceは数値でも文字列でも受け付ける
type ProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
	Image       string          `json:"image"`
	CategoryID  *int64          `json:"category_id"`
}

func (r ProductRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Code:        r.Code,
		Name:        r.Name,
		Price:       r.Price,
		IsAvailable: r.IsAvailable,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
	}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.POST("/products", h.create)
	e.PUT("/products/:id", h.update)
	e.DELETE("/products/:id", h.delete)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Product deleted successfully", nil))
}
