package repository

import (
	"context"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文ヘッダだけ作る（明細はOrderItemGormRepository）
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return 0, translateError(err)
	}
	return order.ID, nil
}

// 明細はid昇順、商品とカテゴリまで読み込む
func (r *OrderGormRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id asc")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Category")
}

func (r *OrderGormRepository) FindDetailByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := r.withDetails(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListDetails(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.withDetails(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
