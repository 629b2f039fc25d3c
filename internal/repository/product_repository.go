package repository

import (
	"context"
	"errors"

	"restaurant-api/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")

	// 一意制約違反（商品コードの重複など）
	ErrConflict = errors.New("conflict")

	// 外部キー違反（存在しないカテゴリ、注文で参照中の商品の削除など）
	ErrInvalidReference = errors.New("invalid reference")
)

// 一覧検索
type ProductListQuery struct {
	CategoryName string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// 現在の単価だけを引く。Tx内で使えば注文確定と同じスナップショットになる。
	FindPrice(ctx context.Context, id int64) (decimal.Decimal, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
