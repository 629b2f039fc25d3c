package repository

import (
	"context"
	"strings"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// カテゴリ名で絞り込み、id順で返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{}).Preload("Category")

	if name := strings.TrimSpace(q.CategoryName); name != "" {
		tx = tx.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", name)
	}

	if err := tx.Order("products.id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得（カテゴリ付き）
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// 単価だけを取得
func (r *ProductGormRepository) FindPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Select("id", "price").
		Where("id = ?", id).
		Take(&p).Error
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	return p.Price, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.Category = nil
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// 商品の更新（全項目置き換え）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"code":         p.Code,
		"name":         p.Name,
		"price":        p.Price,
		"is_available": p.IsAvailable,
		"image":        p.Image,
		"category_id":  p.CategoryID,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（カートの明細はCASCADE、注文明細から参照されていればErrInvalidReference）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
