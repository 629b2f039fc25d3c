package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細
// total_priceは追加/更新時点の価格×数量を保存。
type CartItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity   int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Notes      *string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// テーブル名はcart
func (CartItem) TableName() string {
	return "cart"
}
