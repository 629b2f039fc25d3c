package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-api/internal/domain/model"
	"restaurant-api/internal/handler"
	"restaurant-api/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Service mocks
// =====================

type OrderServiceMock struct{ mock.Mock }

func (m *OrderServiceMock) PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (usecase.OrderOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(usecase.OrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) ListOrders(ctx context.Context) ([]usecase.OrderOutput, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]usecase.OrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) GetOrder(ctx context.Context, orderID int64) (usecase.OrderOutput, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).(usecase.OrderOutput)
	return out, args.Error(1)
}

func (m *OrderServiceMock) DeleteOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

var _ handler.OrderService = (*OrderServiceMock)(nil)

type ProductServiceMock struct{ mock.Mock }

func (m *ProductServiceMock) ListProducts(ctx context.Context, categoryName string) ([]usecase.ProductOutput, error) {
	args := m.Called(ctx, categoryName)
	out, _ := args.Get(0).([]usecase.ProductOutput)
	return out, args.Error(1)
}

func (m *ProductServiceMock) GetProduct(ctx context.Context, productID int64) (usecase.ProductOutput, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).(usecase.ProductOutput)
	return out, args.Error(1)
}

func (m *ProductServiceMock) CreateProduct(ctx context.Context, in usecase.ProductInput) (usecase.ProductOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(usecase.ProductOutput)
	return out, args.Error(1)
}

func (m *ProductServiceMock) UpdateProduct(ctx context.Context, productID int64, in usecase.ProductInput) (usecase.ProductOutput, error) {
	args := m.Called(ctx, productID, in)
	out, _ := args.Get(0).(usecase.ProductOutput)
	return out, args.Error(1)
}

func (m *ProductServiceMock) DeleteProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

var _ handler.ProductService = (*ProductServiceMock)(nil)

type CategoryServiceMock struct{ mock.Mock }

func (m *CategoryServiceMock) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Category)
	return out, args.Error(1)
}

func (m *CategoryServiceMock) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryServiceMock) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryServiceMock) UpdateCategory(ctx context.Context, id int64, name string) (model.Category, error) {
	args := m.Called(ctx, id, name)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryServiceMock) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ handler.CategoryService = (*CategoryServiceMock)(nil)

type CartServiceMock struct{ mock.Mock }

func (m *CartServiceMock) ListCartItems(ctx context.Context, productID *int64) ([]usecase.CartItemOutput, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).([]usecase.CartItemOutput)
	return out, args.Error(1)
}

func (m *CartServiceMock) GetCartItem(ctx context.Context, id int64) (usecase.CartItemOutput, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(usecase.CartItemOutput)
	return out, args.Error(1)
}

func (m *CartServiceMock) AddToCart(ctx context.Context, in usecase.AddCartInput) (usecase.CartItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(usecase.CartItemOutput)
	return out, args.Error(1)
}

func (m *CartServiceMock) UpdateCartItem(ctx context.Context, id int64, in usecase.UpdateCartItemInput) (usecase.CartItemOutput, error) {
	args := m.Called(ctx, id, in)
	out, _ := args.Get(0).(usecase.CartItemOutput)
	return out, args.Error(1)
}

func (m *CartServiceMock) DeleteCartItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CartServiceMock) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ handler.CartService = (*CartServiceMock)(nil)

type pingerStub struct{ err error }

func (p pingerStub) PingContext(ctx context.Context) error { return p.err }

// =====================
// helpers
// =====================

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type successBody[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type routeRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

func newEcho(handlers ...routeRegistrar) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, h := range handlers {
		h.RegisterRoutes(e)
	}
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body=%s", rec.Body.String())
	return v
}

func requireFail(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code, "body=%s", rec.Body.String())
	body := decode[errorBody](t, rec)
	want := "fail"
	if code >= http.StatusInternalServerError {
		want = "error"
	}
	require.Equal(t, want, body.Status)
	require.Equal(t, message, body.Message)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
