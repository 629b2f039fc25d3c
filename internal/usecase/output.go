package usecase

import (
	"time"

	"restaurant-api/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 金額はnumeric(10,2)と同じ表記（"25.50"）で返す
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// 商品に紐づくカテゴリ。未設定ならid/nameともにnull。
type CategoryRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

// 明細の中に入れる商品情報
type ProductSnapshot struct {
	ID          int64       `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Price       string      `json:"price"`
	IsAvailable bool        `json:"is_available"`
	Image       string      `json:"image"`
	Category    CategoryRef `json:"category"`
}

type OrderItemOutput struct {
	ID         int64            `json:"id"`
	Quantity   int64            `json:"quantity"`
	TotalPrice string           `json:"total_price"`
	Notes      *string          `json:"notes"`
	Product    *ProductSnapshot `json:"product"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	TotalAmount string            `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`
}

func toCategoryRef(c *model.Category) CategoryRef {
	if c == nil {
		return CategoryRef{}
	}
	id, name := c.ID, c.Name
	return CategoryRef{ID: &id, Name: &name}
}

func toProductSnapshot(p *model.Product) *ProductSnapshot {
	if p == nil {
		return nil
	}
	return &ProductSnapshot{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Price:       money(p.Price),
		IsAvailable: p.IsAvailable,
		Image:       p.Image,
		Category:    toCategoryRef(p.Category),
	}
}

// 注文と明細（id昇順で読み込み済み）からレスポンスを組み立てる。
// 明細が無くてもitemsは空配列。
func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ID:         it.ID,
			Quantity:   it.Quantity,
			TotalPrice: money(it.TotalPrice),
			Notes:      it.Notes,
			Product:    toProductSnapshot(it.Product),
		})
	}

	return OrderOutput{
		ID:          o.ID,
		TotalAmount: money(o.TotalAmount),
		CreatedAt:   o.CreatedAt,
		Items:       items,
	}
}
