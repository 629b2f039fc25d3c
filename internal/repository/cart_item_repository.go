package repository

import (
	"context"

	"restaurant-api/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartListQuery struct {
	ProductID *int64
}

// カート明細の永続化。読み出しは商品とカテゴリを含めて返す。
type CartItemRepository interface {
	List(ctx context.Context, q CartListQuery) ([]model.CartItem, error)
	FindByID(ctx context.Context, id int64) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (int64, error)
	Update(ctx context.Context, id int64, qty int64, totalPrice decimal.Decimal, notes *string) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
