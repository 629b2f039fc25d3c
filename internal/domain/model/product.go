package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品（メニュー）
// 価格はnumeric(10,2)で保存し、計算もdecimalで行う。
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	Image       string          `gorm:"type:text" json:"image"`
	CategoryID  *int64          `gorm:"index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
