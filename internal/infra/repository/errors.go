package repository

import (
	"errors"

	repo "restaurant-api/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ドライバのエラーをrepositoryのsentinelに寄せる。
// それ以外はそのまま返す（上位でログに出して500）。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repo.ErrConflict
		case pgForeignKeyViolation:
			return repo.ErrInvalidReference
		}
	}
	return err
}
