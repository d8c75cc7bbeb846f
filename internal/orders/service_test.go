package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shoplane/shoplane-backend/internal/notifications"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/pagination"
	"github.com/shoplane/shoplane-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stubTxRunner restores the order map on error the way a real rollback
// discards writes.
type stubTxRunner struct {
	store      *fakeOrderStore
	rolledBack bool
}

func (s *stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	snapshot := make(map[uuid.UUID]*models.Order, len(s.store.orders))
	for id, o := range s.store.orders {
		snapshot[id] = o
	}
	if err := fn(nil); err != nil {
		s.store.orders = snapshot
		s.rolledBack = true
		return err
	}
	return nil
}

type fakeOrderStore struct {
	orders    map[uuid.UUID]*models.Order
	listCalls int
	createErr error
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	store := &fakeOrderStore{orders: map[uuid.UUID]*models.Order{}}
	for _, o := range orders {
		store.orders[o.ID] = o
	}
	return store
}

func (f *fakeOrderStore) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	order.ID = uuid.New()
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderStore) List(ctx context.Context, scope scoping.Scope, page pagination.Params) (*ListResult, error) {
	f.listCalls++
	var out []OrderDTO
	for _, o := range f.orders {
		out = append(out, *FromModel(o))
	}
	return &ListResult{Orders: out}, nil
}

func (f *fakeOrderStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*ListResult, error) {
	var out []OrderDTO
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *FromModel(o))
		}
	}
	return &ListResult{Orders: out}, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if o, ok := f.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (f *fakeOrderStore) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error {
	if o, ok := f.orders[id]; ok {
		o.PaymentStatus = status
	}
	return nil
}

func (f *fakeOrderStore) SetTracking(ctx context.Context, id uuid.UUID, trackingNumber string) error {
	if o, ok := f.orders[id]; ok {
		o.TrackingNumber = &trackingNumber
	}
	return nil
}

type fakeProductSource struct {
	products    map[uuid.UUID]*models.Product
	setStockErr error
}

func (f *fakeProductSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductSource) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if f.setStockErr != nil {
		return f.setStockErr
	}
	if p, ok := f.products[id]; ok {
		p.StockQuantity = quantity
	}
	return nil
}

type fakeShopSource struct {
	shops map[uuid.UUID]*models.Shop
}

func (f *fakeShopSource) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if s, ok := f.shops[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type recordingNotifier struct {
	events []notifications.Event
}

func (r *recordingNotifier) Notify(ctx context.Context, event notifications.Event) {
	r.events = append(r.events, event)
}

type fixture struct {
	tx       *stubTxRunner
	store    *fakeOrderStore
	products *fakeProductSource
	shops    *fakeShopSource
	notifier *recordingNotifier
	svc      Service

	shopID  uuid.UUID
	ownerID uuid.UUID
	product *models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ownerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: ownerID, Name: "Corner Store", IsActive: true}
	product := &models.Product{
		ID:            uuid.New(),
		ShopID:        shop.ID,
		CategoryID:    uuid.New(),
		Name:          "Widget",
		Price:         decimal.NewFromInt(20),
		StockQuantity: 10,
		IsActive:      true,
	}

	f := &fixture{
		store:    newFakeOrderStore(),
		products: &fakeProductSource{products: map[uuid.UUID]*models.Product{product.ID: product}},
		shops:    &fakeShopSource{shops: map[uuid.UUID]*models.Shop{shop.ID: shop}},
		notifier: &recordingNotifier{},
		shopID:   shop.ID,
		ownerID:  ownerID,
		product:  product,
	}
	f.tx = &stubTxRunner{store: f.store}

	svc, err := NewService(f.params(f.notifier))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.svc = svc
	return f
}

func (f *fixture) params(notifier Notifier) ServiceParams {
	return ServiceParams{
		DB:       f.tx,
		Store:    f.store,
		Shops:    f.shops,
		Notifier: notifier,
		OrderRepoFactory: func(tx *gorm.DB) placementOrderRepository {
			return f.store
		},
		ProductRepoFactory: func(tx *gorm.DB) placementProductRepository {
			return f.products
		},
	}
}

func shippingAddress() types.Address {
	return types.Address{
		Name: "Pat Doe", Line1: "1 Main St", City: "Springfield",
		State: "IL", PostalCode: "62701", Country: "US",
	}
}

func TestPlaceOrderSnapshotsAndDecrementsStock(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dto.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(dto.Items))
	}
	item := dto.Items[0]
	if item.ProductName != "Widget" || item.ShopID != f.shopID {
		t.Fatalf("snapshot wrong: %+v", item)
	}
	if !dto.TotalAmount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected total 60, got %s", dto.TotalAmount)
	}
	if f.product.StockQuantity != 7 {
		t.Fatalf("expected stock 7, got %d", f.product.StockQuantity)
	}
}

func TestPlaceOrderUsesDiscountPrice(t *testing.T) {
	f := newFixture(t)
	discount := decimal.NewFromInt(15)
	f.product.DiscountPrice = &discount

	dto, err := f.svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dto.TotalAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected discounted total 30, got %s", dto.TotalAmount)
	}
}

func TestPlaceOrderRejectsInsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 11}},
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestPlaceOrderNotifiesShopOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCashOnDelivery,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.notifier.events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.events))
	}
	if f.notifier.events[0].UserID != f.ownerID || f.notifier.events[0].Kind != "order_placed" {
		t.Fatalf("unexpected event %+v", f.notifier.events[0])
	}
}

func TestPlaceOrderSucceedsWithoutNotifier(t *testing.T) {
	f := newFixture(t)
	svc, _ := NewService(f.params(nil))

	if _, err := svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("order must not depend on notifications: %v", err)
	}
}

func TestListEmptyScopeShortCircuits(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.List(context.Background(), scoping.ForShops(scoping.ResourceOrders, nil), pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Orders) != 0 {
		t.Fatalf("expected empty page, got %d", len(result.Orders))
	}
	if f.store.listCalls != 0 {
		t.Fatal("empty scope must not hit the store")
	}
}

func TestGetHidesForeignVendorOrder(t *testing.T) {
	f := newFixture(t)
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Items:      []models.OrderItem{{ShopID: uuid.New()}},
	}
	f.store.orders[order.ID] = order

	scope := scoping.ForShops(scoping.ResourceOrders, []uuid.UUID{f.shopID})
	if _, err := f.svc.Get(context.Background(), scope, order.ID); pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusNotifiesCustomer(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     enums.OrderStatusPending,
		Items:      []models.OrderItem{{ShopID: f.shopID}},
	}
	f.store.orders[order.ID] = order

	scope := scoping.ForShops(scoping.ResourceOrders, []uuid.UUID{f.shopID})
	if err := f.svc.UpdateStatus(context.Background(), scope, order.ID, enums.OrderStatusShipped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != enums.OrderStatusShipped {
		t.Fatalf("status not updated: %s", order.Status)
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].UserID != customerID {
		t.Fatalf("expected customer notification, got %+v", f.notifier.events)
	}
}

func TestUpdateStatusRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	err := f.svc.UpdateStatus(context.Background(), scoping.All(scoping.ResourceOrders), uuid.New(), enums.OrderStatus("teleported"))
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetMineChecksOwnership(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	order := &models.Order{ID: uuid.New(), CustomerID: customerID}
	f.store.orders[order.ID] = order

	if _, err := f.svc.GetMine(context.Background(), customerID, order.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := f.svc.GetMine(context.Background(), uuid.New(), order.ID); pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("foreign customer must get not found, got %v", err)
	}
}

func TestPlaceOrderCreateFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.store.createErr = errors.New("db down")

	_, err := f.svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 1}},
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if f.product.StockQuantity != 10 {
		t.Fatalf("stock must not change when create fails, got %d", f.product.StockQuantity)
	}
}

func TestPlaceOrderRollsBackWhenStockWriteFails(t *testing.T) {
	f := newFixture(t)
	f.products.setStockErr = errors.New("stock write refused")

	_, err := f.svc.Place(context.Background(), PlaceOrderDTO{
		CustomerID:      uuid.New(),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
		Items:           []PlaceOrderItem{{ProductID: f.product.ID, Quantity: 2}},
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !f.tx.rolledBack {
		t.Fatal("expected the transaction to roll back")
	}
	if len(f.store.orders) != 0 {
		t.Fatalf("order must not survive a failed stock write, got %d", len(f.store.orders))
	}
	if len(f.notifier.events) != 0 {
		t.Fatalf("no notification expected for a failed order, got %d", len(f.notifier.events))
	}
}
