package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoplane/shoplane-backend/internal/notifications"
	product "github.com/shoplane/shoplane-backend/internal/products"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the read and update surface the service needs outside of
// order placement. Placement writes go through tx-bound repositories.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, scope scoping.Scope, page pagination.Params) (*ListResult, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error
	SetTracking(ctx context.Context, id uuid.UUID, trackingNumber string) error
}

// TxRunner executes a function inside a database transaction.
// *db.Client satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type placementOrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

type placementProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// ShopOwnerSource resolves a shop's owning user for notifications.
type ShopOwnerSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

// Notifier delivers best-effort notifications.
type Notifier interface {
	Notify(ctx context.Context, event notifications.Event)
}

// Service defines order operations.
type Service interface {
	Place(ctx context.Context, dto PlaceOrderDTO) (*OrderDTO, error)
	Get(ctx context.Context, scope scoping.Scope, id uuid.UUID) (*OrderDTO, error)
	GetMine(ctx context.Context, customerID, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, scope scoping.Scope, page pagination.Params) (*ListResult, error)
	ListMine(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, scope scoping.Scope, id uuid.UUID, status enums.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, scope scoping.Scope, id uuid.UUID, status enums.PaymentStatus) error
	SetTracking(ctx context.Context, scope scoping.Scope, id uuid.UUID, trackingNumber string) error
}

// ServiceParams packages the order service dependencies. The repo
// factories default to the real repositories; tests swap them for
// stubs. The notifier may be nil.
type ServiceParams struct {
	DB                 TxRunner
	Store              Store
	Shops              ShopOwnerSource
	Notifier           Notifier
	OrderRepoFactory   func(tx *gorm.DB) placementOrderRepository
	ProductRepoFactory func(tx *gorm.DB) placementProductRepository
}

type service struct {
	db          TxRunner
	store       Store
	shops       ShopOwnerSource
	notifier    Notifier
	orderRepo   func(tx *gorm.DB) placementOrderRepository
	productRepo func(tx *gorm.DB) placementProductRepository
}

// NewService wires order dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders store required")
	}
	if params.Shops == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shop source required")
	}
	svc := &service{
		db:          params.DB,
		store:       params.Store,
		shops:       params.Shops,
		notifier:    params.Notifier,
		orderRepo:   params.OrderRepoFactory,
		productRepo: params.ProductRepoFactory,
	}
	if svc.orderRepo == nil {
		svc.orderRepo = func(tx *gorm.DB) placementOrderRepository {
			return NewRepository(tx)
		}
	}
	if svc.productRepo == nil {
		svc.productRepo = func(tx *gorm.DB) placementProductRepository {
			return product.NewRepository(tx)
		}
	}
	return svc, nil
}

func (s *service) Place(ctx context.Context, dto PlaceOrderDTO) (*OrderDTO, error) {
	if dto.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(dto.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if !dto.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	for _, line := range dto.Items {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}

	// Stock checks, the order insert and the stock decrements share one
	// transaction so a failed write never leaves a half-placed order.
	var created *models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.orderRepo(tx)
		productRepo := s.productRepo(tx)

		items := make([]models.OrderItem, 0, len(dto.Items))
		remaining := map[uuid.UUID]int{}
		total := decimal.Zero
		for _, line := range dto.Items {
			p, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation, "product not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			if !p.IsActive {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "product is not available")
			}
			if p.StockQuantity < line.Quantity {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("insufficient stock for %q", p.Name))
			}

			unit := p.Price
			if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
				unit = *p.DiscountPrice
			}
			lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			remaining[p.ID] = p.StockQuantity - line.Quantity

			items = append(items, models.OrderItem{
				ProductID:       p.ID,
				ShopID:          p.ShopID,
				ProductName:     p.Name,
				ProductImageURL: p.ImageURL,
				Quantity:        line.Quantity,
				UnitPrice:       unit,
				TotalPrice:      lineTotal,
			})
		}

		order, err := orderRepo.Create(ctx, &models.Order{
			CustomerID:      dto.CustomerID,
			Status:          enums.OrderStatusPending,
			TotalAmount:     total,
			ShippingAddress: dto.ShippingAddress,
			BillingAddress:  dto.BillingAddress,
			PaymentMethod:   dto.PaymentMethod,
			PaymentStatus:   enums.PaymentStatusPending,
			Notes:           dto.Notes,
			Items:           items,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		for productID, qty := range remaining {
			if err := productRepo.SetStock(ctx, productID, qty); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
			}
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyShopOwners(ctx, created)
	return FromModel(created), nil
}

// notifyShopOwners tells each affected shop owner about the new order.
// Failures here never fail the order.
func (s *service) notifyShopOwners(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}

	notified := map[uuid.UUID]struct{}{}
	for _, item := range order.Items {
		if _, done := notified[item.ShopID]; done {
			continue
		}
		notified[item.ShopID] = struct{}{}

		shop, err := s.shops.FindByID(ctx, item.ShopID)
		if err != nil {
			continue
		}
		s.notifier.Notify(ctx, notifications.Event{
			Kind:    "order_placed",
			UserID:  shop.OwnerID,
			Title:   "New order",
			Message: fmt.Sprintf("Order %s includes items from %s", order.ID, shop.Name),
		})
	}
}

func (s *service) Get(ctx context.Context, scope scoping.Scope, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) GetMine(ctx context.Context, customerID, id uuid.UUID) (*OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, scope scoping.Scope, page pagination.Params) (*ListResult, error) {
	if !scope.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if scope.IsEmpty() {
		return &ListResult{Orders: []OrderDTO{}}, nil
	}

	result, err := s.store.List(ctx, scope, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return result, nil
}

func (s *service) ListMine(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*ListResult, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	result, err := s.store.ListByCustomer(ctx, customerID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, scope scoping.Scope, id uuid.UUID, status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	order, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return err
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, notifications.Event{
			Kind:    "order_status_changed",
			UserID:  order.CustomerID,
			Title:   "Order update",
			Message: fmt.Sprintf("Order %s is now %s", order.ID, status),
		})
	}
	return nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, scope scoping.Scope, id uuid.UUID, status enums.PaymentStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	if _, err := s.loadScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.store.UpdatePaymentStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
	}
	return nil
}

func (s *service) SetTracking(ctx context.Context, scope scoping.Scope, id uuid.UUID, trackingNumber string) error {
	if trackingNumber == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "tracking number required")
	}
	order, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return err
	}

	if err := s.store.SetTracking(ctx, id, trackingNumber); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set tracking number")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, notifications.Event{
			Kind:    "order_shipped",
			UserID:  order.CustomerID,
			Title:   "Order shipped",
			Message: fmt.Sprintf("Order %s tracking: %s", order.ID, trackingNumber),
		})
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// loadScoped hides orders outside the caller's scope behind not-found.
// A vendor is in scope when any item belongs to one of their shops.
func (s *service) loadScoped(ctx context.Context, scope scoping.Scope, id uuid.UUID) (*models.Order, error) {
	if !scope.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if scope.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope.AllowsAll() {
		return order, nil
	}
	for _, item := range order.Items {
		if scope.Contains(item.ShopID) {
			return order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}
