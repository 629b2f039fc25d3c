package repository

import (
	"context"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) withProduct(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category")
}

// カート明細を新しい順に取得（product_idで絞り込み可）
func (r *CartGormRepository) List(ctx context.Context, q repo.CartListQuery) ([]model.CartItem, error) {
	var items []model.CartItem

	tx := r.withProduct(ctx)
	if q.ProductID != nil {
		tx = tx.Where("product_id = ?", *q.ProductID)
	}

	if err := tx.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// 明細を取得
func (r *CartGormRepository) FindByID(ctx context.Context, id int64) (model.CartItem, error) {
	var item model.CartItem
	if err := r.withProduct(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return model.CartItem{}, translateError(err)
	}
	return item, nil
}

func (r *CartGormRepository) Create(ctx context.Context, item model.CartItem) (int64, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return 0, translateError(err)
	}
	return item.ID, nil
}

// 数量・金額・メモを更新
func (r *CartGormRepository) Update(ctx context.Context, id int64, qty int64, totalPrice decimal.Decimal, notes *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":    qty,
			"total_price": totalPrice,
			"notes":       notes,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 全明細を削除
func (r *CartGormRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.CartItem{}).Error
}
