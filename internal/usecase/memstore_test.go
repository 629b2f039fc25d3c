package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"restaurant-api/internal/domain/model"
	repo "restaurant-api/internal/repository"

	"github.com/shopspring/decimal"
)

// memStore はTxの性質（commitまで見えない・失敗時は何も残らない）を持つインメモリ実装。
// WithinTxは注文データのコピーに書き込み、fnが成功した時だけ差し替える。
// 注文データ(mu)はTx単位で直列化し、商品(pmu)は読み書きの間だけロックするので
// Txの途中でも価格は変わりうる。
type memStore struct {
	mu   sync.Mutex
	data *memData

	pmu        sync.RWMutex
	products   map[int64]model.Product
	categories map[int64]model.Category

	// 単価を読んだ直後に呼ばれる（Tx中の値上げを再現する）
	afterPriceRead func(productID int64)

	// 明細INSERTで失敗させる（ヘッダ書き込み後のrollback確認用）
	failItemsInsert bool
}

type memData struct {
	orders      map[int64]model.Order
	items       map[int64]model.OrderItem
	nextOrderID int64
	nextItemID  int64
}

func (d *memData) clone() *memData {
	c := &memData{
		orders:      make(map[int64]model.Order, len(d.orders)),
		items:       make(map[int64]model.OrderItem, len(d.items)),
		nextOrderID: d.nextOrderID,
		nextItemID:  d.nextItemID,
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.items {
		c.items[k] = v
	}
	return c
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]model.Product{},
		categories: map[int64]model.Category{},
		data: &memData{
			orders: map[int64]model.Order{},
			items:  map[int64]model.OrderItem{},
		},
	}
}

func (s *memStore) addCategory(id int64, name string) {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	s.categories[id] = model.Category{ID: id, Name: name}
}

func (s *memStore) addProduct(id int64, code string, price string, categoryID *int64) {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	s.products[id] = model.Product{
		ID:          id,
		Code:        code,
		Name:        code,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
		CategoryID:  categoryID,
	}
}

func (s *memStore) setPrice(id int64, price decimal.Decimal) {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	p := s.products[id]
	p.Price = price
	s.products[id] = p
}

func (s *memStore) price(id int64) decimal.Decimal {
	s.pmu.RLock()
	defer s.pmu.RUnlock()
	return s.products[id].Price
}

func (s *memStore) hasProduct(id int64) bool {
	s.pmu.RLock()
	defer s.pmu.RUnlock()
	_, ok := s.products[id]
	return ok
}

func (s *memStore) counts() (orders int, items int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders), len(s.data.items)
}

func (s *memStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	if err := fn(&memTx{store: s, data: staged}); err != nil {
		return err
	}
	s.data = staged
	return nil
}

// Tx外の読み書き（OrderRepository）
func (s *memStore) Create(ctx context.Context, order model.Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memOrders{store: s, data: s.data}).Create(ctx, order)
}

func (s *memStore) FindDetailByID(ctx context.Context, orderID int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memOrders{store: s, data: s.data}).FindDetailByID(ctx, orderID)
}

func (s *memStore) ListDetails(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memOrders{store: s, data: s.data}).ListDetails(ctx)
}

func (s *memStore) Delete(ctx context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memOrders{store: s, data: s.data}).Delete(ctx, orderID)
}

type memTx struct {
	store *memStore
	data  *memData
}

func (t *memTx) Orders() repo.OrderRepository         { return &memOrders{store: t.store, data: t.data} }
func (t *memTx) OrderItems() repo.OrderItemRepository { return &memOrderItems{store: t.store, data: t.data} }
func (t *memTx) Products() repo.ProductRepository     { return &memProducts{store: t.store} }

// 呼び出し側でロック済み
type memOrders struct {
	store *memStore
	data  *memData
}

func (r *memOrders) Create(ctx context.Context, order model.Order) (int64, error) {
	r.data.nextOrderID++
	order.ID = r.data.nextOrderID
	order.Items = nil
	r.data.orders[order.ID] = order
	return order.ID, nil
}

func (r *memOrders) FindDetailByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.data.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}

	r.store.pmu.RLock()
	defer r.store.pmu.RUnlock()

	items := []model.OrderItem{}
	for _, it := range r.data.items {
		if it.OrderID != orderID {
			continue
		}
		if p, ok := r.store.products[it.ProductID]; ok {
			if p.CategoryID != nil {
				if c, ok := r.store.categories[*p.CategoryID]; ok {
					p.Category = &c
				}
			}
			it.Product = &p
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	o.Items = items
	return o, nil
}

func (r *memOrders) ListDetails(ctx context.Context) ([]model.Order, error) {
	ids := make([]int64, 0, len(r.data.orders))
	for id := range r.data.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]model.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.FindDetailByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// 明細はCASCADEと同じく一緒に消す
func (r *memOrders) Delete(ctx context.Context, orderID int64) error {
	if _, ok := r.data.orders[orderID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.data.orders, orderID)
	for id, it := range r.data.items {
		if it.OrderID == orderID {
			delete(r.data.items, id)
		}
	}
	return nil
}

type memOrderItems struct {
	store *memStore
	data  *memData
}

func (r *memOrderItems) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if r.store.failItemsInsert {
		return errors.New("connection reset by peer")
	}
	for _, it := range items {
		if !r.store.hasProduct(it.ProductID) {
			return repo.ErrInvalidReference
		}
		r.data.nextItemID++
		it.ID = r.data.nextItemID
		it.OrderID = orderID
		r.data.items[it.ID] = it
	}
	return nil
}

type memProducts struct {
	store *memStore
}

var errUnsupported = errors.New("not supported by memStore")

func (r *memProducts) FindPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	r.store.pmu.RLock()
	p, ok := r.store.products[id]
	r.store.pmu.RUnlock()
	if !ok {
		return decimal.Zero, repo.ErrNotFound
	}

	if r.store.afterPriceRead != nil {
		r.store.afterPriceRead(id)
	}
	return p.Price, nil
}

func (r *memProducts) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	return nil, errUnsupported
}

func (r *memProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	return model.Product{}, errUnsupported
}

func (r *memProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return model.Product{}, errUnsupported
}

func (r *memProducts) Update(ctx context.Context, p model.Product) error {
	return errUnsupported
}

func (r *memProducts) Delete(ctx context.Context, id int64) error {
	return errUnsupported
}
