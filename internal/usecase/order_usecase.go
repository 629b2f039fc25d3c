package usecase

import (
	"context"
	"errors"
	"log/slog"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"
)

// 注文確定Txの進み具合。失敗時にどこでrollbackしたかをログに残す。
type orderTxState int

const (
	txIdle orderTxState = iota
	txBegun
	txItemsValidated
	txHeaderWritten
	txItemsWritten
	txCommitted
	txRolledBack
)

func (s orderTxState) String() string {
	switch s {
	case txIdle:
		return "idle"
	case txBegun:
		return "tx_begun"
	case txItemsValidated:
		return "items_validated"
	case txHeaderWritten:
		return "header_written"
	case txItemsWritten:
		return "items_written"
	case txCommitted:
		return "committed"
	case txRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	log    *slog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, log *slog.Logger) *OrderUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &OrderUsecase{tx: tx, orders: orders, log: log}
}

type PlaceOrderInput struct {
	Items []OrderItemInput
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return newInvalid("items must not be empty")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return newInvalid("product_id must be a positive integer")
		}
		if it.Quantity < 1 {
			return newInvalid("quantity must be a positive integer")
		}
	}
	return nil
}

// PlaceOrder は単価の確定・注文ヘッダ・明細の保存を1つのTxで行う。
// 単価はTx内で一度だけ読み、その値を明細の金額にも使う（書き込み中に再読込しない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if err := validatePlaceOrder(in); err != nil {
		return OrderOutput{}, err
	}

	var orderID int64
	state := txIdle

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		state = txBegun

		priced, err := PriceOrderItems(ctx, r.Products(), in.Items)
		if err != nil {
			return err
		}
		state = txItemsValidated

		id, err := r.Orders().Create(ctx, model.Order{TotalAmount: priced.Total})
		if err != nil {
			return err
		}
		state = txHeaderWritten

		items := make([]model.OrderItem, 0, len(priced.Items))
		for _, p := range priced.Items {
			items = append(items, model.OrderItem{
				ProductID:  p.ProductID,
				Quantity:   p.Quantity,
				TotalPrice: p.LineTotal,
				Notes:      p.Notes,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, id, items); err != nil {
			return err
		}
		state = txItemsWritten

		orderID = id
		return nil
	})

	if err != nil {
		if state == txIdle {
			u.log.ErrorContext(ctx, "order transaction could not begin", slog.Any("err", err))
		} else {
			u.log.WarnContext(ctx, "order transaction rolled back",
				slog.String("state", txRolledBack.String()),
				slog.String("at", state.String()),
				slog.Any("err", err),
			)
		}

		var nf *ProductNotFoundError
		if errors.As(err, &nf) {
			return OrderOutput{}, newNotFound(nf.Error())
		}
		return OrderOutput{}, newPersistence("Failed to create order")
	}
	state = txCommitted

	o, err := u.orders.FindDetailByID(ctx, orderID)
	if err != nil {
		u.log.ErrorContext(ctx, "reload committed order failed",
			slog.Int64("order_id", orderID),
			slog.String("state", state.String()),
			slog.Any("err", err),
		)
		return OrderOutput{}, newPersistence("Failed to create order")
	}

	u.log.InfoContext(ctx, "order placed",
		slog.Int64("order_id", o.ID),
		slog.Int("items", len(o.Items)),
		slog.String("total_amount", money(o.TotalAmount)),
	)
	return toOrderOutput(o), nil
}

// 全注文を新しい順で返す
func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orders.ListDetails(ctx)
	if err != nil {
		u.log.ErrorContext(ctx, "list orders failed", slog.Any("err", err))
		return []OrderOutput{}, newPersistence("Failed to fetch orders")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, newNotFound("Order not found")
	}

	o, err := u.orders.FindDetailByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, newNotFound("Order not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "get order failed", slog.Int64("order_id", orderID), slog.Any("err", err))
		return OrderOutput{}, newPersistence("Failed to fetch order")
	}
	return toOrderOutput(o), nil
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return newNotFound("Order not found")
	}

	err := u.orders.Delete(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return newNotFound("Order not found")
	}
	if err != nil {
		u.log.ErrorContext(ctx, "delete order failed", slog.Int64("order_id", orderID), slog.Any("err", err))
		return newPersistence("Failed to delete order")
	}
	return nil
}
