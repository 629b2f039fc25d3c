package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	log         *slog.Logger
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, log *slog.Logger) *ProductUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &ProductUsecase{productRepo: productRepo, log: log}
}

// 商品の作成・更新の入力
type ProductInput struct {
	Code        string
	Name        string
	Price       decimal.Decimal
	IsAvailable *bool
	Image       string
	CategoryID  *int64
}

type ProductOutput struct {
	ProductSnapshot
	CategoryID *int64    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ProductSnapshot: *toProductSnapshot(&p),
		CategoryID:      p.CategoryID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return newInvalid("code is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return newInvalid("name is required")
	}
	if in.Price.IsNegative() {
		return newInvalid("price must be >= 0")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return newInvalid("invalid category_id")
	}
	return nil
}

func (in ProductInput) toModel(id int64) model.Product {
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return model.Product{
		ID:          id,
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price.Round(2),
		IsAvailable: available,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
	}
}

// カテゴリ名（空なら全件）で一覧
func (u *ProductUsecase) ListProducts(ctx context.Context, categoryName string) ([]ProductOutput, error) {
	items, err := u.productRepo.List(ctx, repo.ProductListQuery{CategoryName: categoryName})
	if err != nil {
		u.log.ErrorContext(ctx, "list products failed", slog.Any("err", err))
		return []ProductOutput{}, newPersistence("Failed to fetch products")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		outs = append(outs, toProductOutput(p))
	}
	return outs, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductOutput, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, newNotFound("Product not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "get product failed", slog.Int64("product_id", productID), slog.Any("err", err))
		return ProductOutput{}, newPersistence("Failed to fetch product")
	}
	return toProductOutput(p), nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (ProductOutput, error) {
	if err := validateProduct(in); err != nil {
		return ProductOutput{}, err
	}

	created, err := u.productRepo.Create(ctx, in.toModel(0))
	if err != nil {
		return ProductOutput{}, u.writeError(ctx, err, "Failed to create product")
	}

	//カテゴリ付きで読み直す
	p, err := u.productRepo.FindByID(ctx, created.ID)
	if err != nil {
		u.log.ErrorContext(ctx, "reload product failed", slog.Int64("product_id", created.ID), slog.Any("err", err))
		return ProductOutput{}, newPersistence("Failed to create product")
	}
	return toProductOutput(p), nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) (ProductOutput, error) {
	if err := validateProduct(in); err != nil {
		return ProductOutput{}, err
	}

	err := u.productRepo.Update(ctx, in.toModel(productID))
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, newNotFound("Product not found")
	}
	if err != nil {
		return ProductOutput{}, u.writeError(ctx, err, "Failed to update product")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		u.log.ErrorContext(ctx, "reload product failed", slog.Int64("product_id", productID), slog.Any("err", err))
		return ProductOutput{}, newPersistence("Failed to update product")
	}
	return toProductOutput(p), nil
}

// 注文明細から参照されている商品は消せない
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return newNotFound("Product not found")
	}
	if errors.Is(err, repo.ErrInvalidReference) {
		return newConflict("Product is referenced by existing orders")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "delete product failed", slog.Int64("product_id", productID), slog.Any("err", err))
		return newPersistence("Failed to delete product")
	}
	return nil
}

// 作成/更新時の制約違反を振り分ける
func (u *ProductUsecase) writeError(ctx context.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repo.ErrConflict):
		return newConflict("Product code already exists")
	case errors.Is(err, repo.ErrInvalidReference):
		return newConflict("Category not found")
	default:
		u.log.ErrorContext(ctx, "write product failed", slog.Any("err", err))
		return newPersistence(fallback)
	}
}
