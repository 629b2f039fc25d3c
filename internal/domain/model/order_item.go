package model

import "github.com/shopspring/decimal"

// 注文明細
// total_priceは注文時点の単価×数量（スナップショット）。
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity   int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Notes      *string         `gorm:"type:text" json:"notes"`
}
