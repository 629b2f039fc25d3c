package handler

import (
	"context"
	"net/http"
	"strconv"

	"restaurant-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartService interface {
	ListCartItems(ctx context.Context, productID *int64) ([]usecase.CartItemOutput, error)
	GetCartItem(ctx context.Context, id int64) (usecase.CartItemOutput, error)
	AddToCart(ctx context.Context, in usecase.AddCartInput) (usecase.CartItemOutput, error)
	UpdateCartItem(ctx context.Context, id int64, in usecase.UpdateCartItemInput) (usecase.CartItemOutput, error)
	DeleteCartItem(ctx context.Context, id int64) error
	ClearCart(ctx context.Context) error
}

// /cartsのHTTP
type CartHandler struct {
	uc CartService
}

// DI
func NewCartHandler(uc CartService) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Notes     *string `json:"notes"`
}

type UpdateCartItemRequest struct {
	Quantity int64   `json:"quantity"`
	Notes    *string `json:"notes"`
}

// /carts, /carts/{id} を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/carts")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.add)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.DELETE("", h.clear)
}

func (h *CartHandler) list(c echo.Context) error {
	var productID *int64
	if v := c.QueryParam("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid product_id")
		}
		productID = &id
	}

	out, err := h.uc.ListCartItems(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Cart item not found")
	}

	out, err := h.uc.GetCartItem(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success(out))
}

func (h *CartHandler) add(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	out, err := h.uc.AddToCart(c.Request().Context(), usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, successMessage("Item added to cart", out))
}

func (h *CartHandler) update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Cart item not found")
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), id, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Cart item updated", out))
}

func (h *CartHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Cart item not found")
	}

	if err := h.uc.DeleteCartItem(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Cart item deleted", nil))
}

func (h *CartHandler) clear(c echo.Context) error {
	if err := h.uc.ClearCart(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Cart cleared", nil))
}
