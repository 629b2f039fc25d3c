package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	log        *slog.Logger
}

func NewCategoryUsecase(categories repo.CategoryRepository, log *slog.Logger) *CategoryUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryUsecase{categories: categories, log: log}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		u.log.ErrorContext(ctx, "list categories failed", slog.Any("err", err))
		return []model.Category{}, newPersistence("Failed to fetch categories")
	}
	return items, nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, newNotFound("Category not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "get category failed", slog.Int64("category_id", id), slog.Any("err", err))
		return model.Category{}, newPersistence("Failed to fetch category")
	}
	return c, nil
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, newInvalid("name is required")
	}

	c, err := u.categories.Create(ctx, model.Category{Name: name})
	if err != nil {
		u.log.ErrorContext(ctx, "create category failed", slog.Any("err", err))
		return model.Category{}, newPersistence("Failed to create category")
	}
	return c, nil
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, id int64, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, newInvalid("name is required")
	}

	c, err := u.categories.Update(ctx, model.Category{ID: id, Name: name})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, newNotFound("Category not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "update category failed", slog.Int64("category_id", id), slog.Any("err", err))
		return model.Category{}, newPersistence("Failed to update category")
	}
	return c, nil
}

func (u *CategoryUsecase) DeleteCategory(ctx context.Context, id int64) error {
	err := u.categories.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return newNotFound("Category not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "delete category failed", slog.Int64("category_id", id), slog.Any("err", err))
		return newPersistence("Failed to delete category")
	}
	return nil
}
