package handler

import (
	"context"
	"net/http"

	"restaurant-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (usecase.OrderOutput, error)
	ListOrders(ctx context.Context) ([]usecase.OrderOutput, error)
	GetOrder(ctx context.Context, orderID int64) (usecase.OrderOutput, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

type OrderHandler struct {
	uc OrderService
}

func NewOrderHandler(uc OrderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Notes     *string `json:"notes"`
}

type OrderCreateRequest struct {
	Items []OrderItemRequest `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Notes:     it.Notes,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{Items: items})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, successMessage("Order created successfully", out))
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success(out))
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Order not found")
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success(out))
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Order not found")
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, successMessage("Order deleted successfully", nil))
}
