package db

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"restaurant-api/internal/config"
	"restaurant-api/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.IsProd() {
		level = logger.Silent
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return gdb, nil
}

// Migrate はテーブルと制約（CASCADE等）を作る。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartItem{},
	)
}

// DATABASE_URL があれば最優先で使う。
// statement_timeoutはpgxのruntime paramとして渡す（ms）。
func buildDSN(cfg config.Config) (string, error) {
	timeoutMS := strconv.FormatInt(cfg.DBStatementTimeout.Milliseconds(), 10)

	// DATABASE_URLがkey=value形式ならそのまま後ろに足す
	if cfg.DatabaseURL != "" && !isURLDSN(cfg.DatabaseURL) {
		dsn := strings.TrimSpace(cfg.DatabaseURL)
		if cfg.DBStatementTimeout > 0 && !strings.Contains(dsn, "statement_timeout=") {
			dsn += " statement_timeout=" + timeoutMS
		}
		return dsn, nil
	}

	if cfg.DatabaseURL != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		if cfg.DBStatementTimeout > 0 {
			q := u.Query()
			if q.Get("statement_timeout") == "" {
				q.Set("statement_timeout", timeoutMS)
			}
			u.RawQuery = q.Encode()
		}
		return u.String(), nil
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
	if cfg.DBStatementTimeout > 0 {
		dsn += " statement_timeout=" + timeoutMS
	}
	return dsn, nil
}

func isURLDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
