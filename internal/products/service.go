package product

import (
	"context"
	"errors"

	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the persistence surface the service needs.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProductDTO) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
	List(ctx context.Context, scope scoping.Scope, filters ListFilters, page pagination.Params) (*ListResult, error)
	CountLowStock(ctx context.Context, scope scoping.Scope) (int64, error)
}

// Service defines scoped product operations. Every method takes the
// caller's resolved scope; data outside it is indistinguishable from
// data that does not exist.
type Service interface {
	List(ctx context.Context, scope scoping.Scope, filters ListFilters, page pagination.Params) (*ListResult, error)
	Get(ctx context.Context, scope scoping.Scope, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, scope scoping.Scope, dto CreateProductDTO) (*ProductDTO, error)
	Update(ctx context.Context, scope scoping.Scope, id uuid.UUID, dto UpdateProductDTO) (*ProductDTO, error)
	Delete(ctx context.Context, scope scoping.Scope, id uuid.UUID) error
	SetActive(ctx context.Context, scope scoping.Scope, id uuid.UUID, active bool) error
	SetStock(ctx context.Context, scope scoping.Scope, id uuid.UUID, quantity int) error
}

type service struct {
	store Store
}

// NewService wires product dependencies.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products store required")
	}
	return &service{store: store}, nil
}

func (s *service) List(ctx context.Context, scope scoping.Scope, filters ListFilters, page pagination.Params) (*ListResult, error) {
	if !scope.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if scope.IsEmpty() {
		return &ListResult{Products: []ProductSummary{}}, nil
	}

	result, err := s.store.List(ctx, scope, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, scope scoping.Scope, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) Create(ctx context.Context, scope scoping.Scope, dto CreateProductDTO) (*ProductDTO, error) {
	if !scope.IsAvailable() || !scope.Contains(dto.ShopID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if dto.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required")
	}
	if dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if dto.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	product, err := s.store.Create(ctx, dto.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return NewProductDTO(product), nil
}

func (s *service) Update(ctx context.Context, scope scoping.Scope, id uuid.UUID, dto UpdateProductDTO) (*ProductDTO, error) {
	if _, err := s.loadScoped(ctx, scope, id); err != nil {
		return nil, err
	}
	if dto.Price != nil && dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if dto.StockQuantity != nil && *dto.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	product, err := s.store.Update(ctx, id, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return NewProductDTO(product), nil
}

func (s *service) Delete(ctx context.Context, scope scoping.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, scope scoping.Scope, id uuid.UUID, active bool) error {
	if _, err := s.loadScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle product")
	}
	return nil
}

func (s *service) SetStock(ctx context.Context, scope scoping.Scope, id uuid.UUID, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if _, err := s.loadScoped(ctx, scope, id); err != nil {
		return err
	}
	if err := s.store.SetStock(ctx, id, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set stock")
	}
	return nil
}

// loadScoped fetches the product and hides rows outside the caller's
// scope behind a not-found error.
func (s *service) loadScoped(ctx context.Context, scope scoping.Scope, id uuid.UUID) (*models.Product, error) {
	if !scope.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if scope.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !scope.Contains(product.ShopID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
