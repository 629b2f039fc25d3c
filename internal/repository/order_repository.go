package repository

import (
	"context"

	"restaurant-api/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)

	// 明細（id昇順）と商品・カテゴリまで含めて返す
	FindDetailByID(ctx context.Context, orderID int64) (model.Order, error)
	// 新しい順
	ListDetails(ctx context.Context) ([]model.Order, error)

	// 明細はON DELETE CASCADEで消える
	Delete(ctx context.Context, orderID int64) error
}
