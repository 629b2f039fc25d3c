package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"restaurant-api/internal/config"
	"restaurant-api/internal/handler"
	"restaurant-api/internal/infra/db"
	infraRepo "restaurant-api/internal/infra/repository"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/server"
	"restaurant-api/internal/usecase"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Service:   "restaurant-api",
		Env:       cfg.GoEnv,
		Level:     cfg.LogLevel,
		AddSource: !cfg.IsProd(),
	})

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("close db failed", slog.Any("err", err))
		}
	}()

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, log)
	productUC := usecase.NewProductUsecase(productRepo, log)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, log)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, log)

	//Handler生成
	e := server.New(cfg, log,
		handler.NewIndexHandler(sqlDB),
		handler.NewCategoryHandler(categoryUC),
		handler.NewProductHandler(productUC),
		handler.NewCartHandler(cartUC),
		handler.NewOrderHandler(orderUC),
	)

	//Server起動とDB監視（SIGINT/SIGTERMで両方止める）
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx, e, cfg.Addr(), cfg.ShutdownTimeout, log)
	})
	g.Go(func() error {
		return db.Monitor(gctx, sqlDB, cfg.DBHealthInterval, log)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("bye")
	return nil
}
