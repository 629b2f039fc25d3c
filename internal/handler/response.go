package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"restaurant-api/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// 4xxは"fail"、5xxは"error"
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(data any) SuccessResponse {
	return SuccessResponse{Status: statusSuccess, Data: data}
}

func successMessage(message string, data any) SuccessResponse {
	return SuccessResponse{Status: statusSuccess, Message: message, Data: data}
}

func errorStatus(code int) string {
	if code >= http.StatusInternalServerError {
		return statusError
	}
	return statusFail
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorResponse{Status: errorStatus(code), Message: message})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return fail(c, he.Status, he.Message)
	}

	//500
	return fail(c, http.StatusInternalServerError, "Internal server error")
}

// パスの:idを正の整数として読む
func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// echo自身のエラー（ルート無し、405、bind失敗、panic）も同じ形で返す。
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = http.StatusText(code)
		}
		if code >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "unhandled error",
				slog.String("path", c.Path()),
				slog.Any("err", err),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = fail(c, code, message)
		}
		if werr != nil {
			log.Error("write error response failed", slog.Any("err", werr))
		}
	}
}
