package repository

import (
	"context"
	"database/sql"

	repo "restaurant-api/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }

type TxManagerGorm struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// READ COMMITTEDで十分（単価は確定時に明細へコピーする）
func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{
		db:   db,
		opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}
}

// gormのTransactionがBEGIN/COMMIT/ROLLBACKと接続の返却を担う。
// fnがerrorを返すかpanicした場合はrollbackされる。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			products:   NewProductGormRepository(tx),
		}
		return fn(r)
	}, tm.opts)
}
