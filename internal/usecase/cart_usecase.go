package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /carts の業務ロジックです。
// 金額は追加・更新時点の単価×数量で保存します。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	log          *slog.Logger
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	log *slog.Logger,
) *CartUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

type CartItemOutput struct {
	ID         int64            `json:"id"`
	ProductID  int64            `json:"product_id"`
	Quantity   int64            `json:"quantity"`
	TotalPrice string           `json:"total_price"`
	Notes      *string          `json:"notes"`
	CreatedAt  time.Time        `json:"created_at"`
	Product    *ProductSnapshot `json:"product"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
	Notes     *string
}

type UpdateCartItemInput struct {
	Quantity int64
	Notes    *string
}

func toCartItemOutput(it model.CartItem) CartItemOutput {
	return CartItemOutput{
		ID:         it.ID,
		ProductID:  it.ProductID,
		Quantity:   it.Quantity,
		TotalPrice: money(it.TotalPrice),
		Notes:      it.Notes,
		CreatedAt:  it.CreatedAt,
		Product:    toProductSnapshot(it.Product),
	}
}

// 新しい順。productIDがあれば絞り込む。
func (u *CartUsecase) ListCartItems(ctx context.Context, productID *int64) ([]CartItemOutput, error) {
	items, err := u.cartItemRepo.List(ctx, repo.CartListQuery{ProductID: productID})
	if err != nil {
		u.log.ErrorContext(ctx, "list cart failed", slog.Any("err", err))
		return []CartItemOutput{}, newPersistence("Failed to fetch cart")
	}

	outs := make([]CartItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, toCartItemOutput(it))
	}
	return outs, nil
}

func (u *CartUsecase) GetCartItem(ctx context.Context, id int64) (CartItemOutput, error) {
	it, err := u.cartItemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, newNotFound("Cart item not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "get cart item failed", slog.Int64("cart_item_id", id), slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to fetch cart item")
	}
	return toCartItemOutput(it), nil
}

// AddToCart は現在の単価で金額を計算して明細を追加する。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartItemOutput, error) {
	if in.ProductID <= 0 {
		return CartItemOutput{}, newInvalid("product_id must be a positive integer")
	}
	if in.Quantity < 1 {
		return CartItemOutput{}, newInvalid("quantity must be a positive integer")
	}

	price, err := u.productRepo.FindPrice(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, newNotFound("Product not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "lookup price failed", slog.Int64("product_id", in.ProductID), slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to add item to cart")
	}

	id, err := u.cartItemRepo.Create(ctx, model.CartItem{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		TotalPrice: price.Mul(decimal.NewFromInt(in.Quantity)),
		Notes:      in.Notes,
	})
	if errors.Is(err, repo.ErrInvalidReference) {
		//価格取得後に商品が消された
		return CartItemOutput{}, newNotFound("Product not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "create cart item failed", slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to add item to cart")
	}

	it, err := u.cartItemRepo.FindByID(ctx, id)
	if err != nil {
		u.log.ErrorContext(ctx, "reload cart item failed", slog.Int64("cart_item_id", id), slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to add item to cart")
	}
	return toCartItemOutput(it), nil
}

// 数量とメモを変更し、現在の単価で金額を再計算する。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, id int64, in UpdateCartItemInput) (CartItemOutput, error) {
	if in.Quantity < 1 {
		return CartItemOutput{}, newInvalid("quantity must be a positive integer")
	}

	current, err := u.cartItemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, newNotFound("Cart item not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "get cart item failed", slog.Int64("cart_item_id", id), slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to update cart item")
	}
	if current.Product == nil {
		return CartItemOutput{}, newNotFound("Cart item not found")
	}

	total := current.Product.Price.Mul(decimal.NewFromInt(in.Quantity))
	err = u.cartItemRepo.Update(ctx, id, in.Quantity, total, in.Notes)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemOutput{}, newNotFound("Cart item not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "update cart item failed", slog.Int64("cart_item_id", id), slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to update cart item")
	}

	it, err := u.cartItemRepo.FindByID(ctx, id)
	if err != nil {
		u.log.ErrorContext(ctx, "reload cart item failed", slog.Int64("cart_item_id", id), slog.Any("err", err))
		return CartItemOutput{}, newPersistence("Failed to update cart item")
	}
	return toCartItemOutput(it), nil
}

func (u *CartUsecase) DeleteCartItem(ctx context.Context, id int64) error {
	err := u.cartItemRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return newNotFound("Cart item not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "delete cart item failed", slog.Int64("cart_item_id", id), slog.Any("err", err))
		return newPersistence("Failed to delete cart item")
	}
	return nil
}

func (u *CartUsecase) ClearCart(ctx context.Context) error {
	if err := u.cartItemRepo.Clear(ctx); err != nil {
		u.log.ErrorContext(ctx, "clear cart failed", slog.Any("err", err))
		return newPersistence("Failed to clear cart")
	}
	return nil
}
