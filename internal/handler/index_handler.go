package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// *sql.DBが満たす
type Pinger interface {
	PingContext(ctx context.Context) error
}

// "/"と"/healthz"
type IndexHandler struct {
	db Pinger
}

func NewIndexHandler(db Pinger) *IndexHandler {
	return &IndexHandler{db: db}
}

func (h *IndexHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.index)
	e.GET("/healthz", h.health)
}

func (h *IndexHandler) index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  statusSuccess,
		"message": "Restaurant API is running",
		"endpoints": map[string]string{
			"categories": "/categories",
			"products":   "/products",
			"carts":      "/carts",
			"orders":     "/orders",
		},
	})
}

func (h *IndexHandler) health(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return fail(c, http.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(http.StatusOK, successMessage("ok", nil))
}
