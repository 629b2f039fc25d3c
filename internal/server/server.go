package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"restaurant-api/internal/config"
	"restaurant-api/internal/handler"
	"restaurant-api/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はミドルウェアとルートを登録したechoを返す。
func New(cfg config.Config, log *slog.Logger, handlers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.CORS(cfg.CORSOrigins))

	RegisterRoutes(e, handlers...)
	return e
}

// Start はctxがキャンセルされるまで待ち受け、その後shutdownTimeout以内に停止する。
func Start(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
