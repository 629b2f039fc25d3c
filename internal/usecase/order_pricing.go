package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "restaurant-api/internal/repository"

	"github.com/shopspring/decimal"
)

// 単価の参照先。Tx内のProductRepositoryを渡す。
type PriceLookup interface {
	FindPrice(ctx context.Context, productID int64) (decimal.Decimal, error)
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int64
	Notes     *string
}

// 単価を確定した明細
type PricedItem struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Notes     *string
}

type PricedOrder struct {
	Items []PricedItem
	Total decimal.Decimal
}

// 注文に含まれる商品が存在しない
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with id %d not found", e.ProductID)
}

// PriceOrderItems は各明細の単価を引き、明細金額と合計を計算する。
// 1件でも商品が無ければProductNotFoundErrorで失敗し、途中結果は返さない。
func PriceOrderItems(ctx context.Context, lookup PriceLookup, items []OrderItemInput) (PricedOrder, error) {
	priced := make([]PricedItem, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		price, err := lookup.FindPrice(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return PricedOrder{}, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if err != nil {
			return PricedOrder{}, fmt.Errorf("lookup price of product %d: %w", it.ProductID, err)
		}

		lineTotal := price.Mul(decimal.NewFromInt(it.Quantity))
		priced = append(priced, PricedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
			LineTotal: lineTotal,
			Notes:     it.Notes,
		})
		total = total.Add(lineTotal)
	}

	return PricedOrder{Items: priced, Total: total}, nil
}
