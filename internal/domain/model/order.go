package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文ヘッダ
// total_amountは作成時に確定し、以後更新しない。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}
