package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoplane/shoplane-backend/internal/metrics"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	"github.com/shoplane/shoplane-backend/pkg/types"
	"github.com/google/uuid"
)

// ProductDTO is the full product payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID               `json:"id"`
	ShopID         uuid.UUID               `json:"shop_id"`
	CategoryID     uuid.UUID               `json:"category_id"`
	Name           string                  `json:"name"`
	Description    *string                 `json:"description,omitempty"`
	Price          decimal.Decimal         `json:"price"`
	DiscountPrice  *decimal.Decimal        `json:"discount_price,omitempty"`
	StockQuantity  int                     `json:"stock_quantity"`
	StockStatus    enums.StockStatus       `json:"stock_status"`
	IsActive       bool                    `json:"is_active"`
	ImageURL       *string                 `json:"image_url,omitempty"`
	Images         []string                `json:"images,omitempty"`
	Specifications types.SpecificationList `json:"specifications,omitempty"`
	Properties     types.PropertyList      `json:"properties,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ProductSummary is the trimmed list row.
type ProductSummary struct {
	ID            uuid.UUID         `json:"id"`
	ShopID        uuid.UUID         `json:"shop_id"`
	CategoryID    uuid.UUID         `json:"category_id"`
	Name          string            `json:"name"`
	Price         decimal.Decimal   `json:"price"`
	DiscountPrice *decimal.Decimal  `json:"discount_price,omitempty"`
	StockQuantity int               `json:"stock_quantity"`
	StockStatus   enums.StockStatus `json:"stock_status"`
	IsActive      bool              `json:"is_active"`
	ImageURL      *string           `json:"image_url,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CreateProductDTO holds the data required to persist a new product.
type CreateProductDTO struct {
	ShopID         uuid.UUID
	CategoryID     uuid.UUID
	Name           string
	Description    *string
	Price          decimal.Decimal
	DiscountPrice  *decimal.Decimal
	StockQuantity  int
	ImageURL       *string
	Images         []string
	Specifications types.SpecificationList
	Properties     types.PropertyList
}

// UpdateProductDTO carries editable fields. Nil means leave unchanged.
type UpdateProductDTO struct {
	CategoryID     *uuid.UUID
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	DiscountPrice  *decimal.Decimal
	StockQuantity  *int
	ImageURL       *string
	Images         []string
	Specifications types.SpecificationList
	Properties     types.PropertyList
}

// ListFilters narrows product list queries.
type ListFilters struct {
	CategoryID *uuid.UUID
	Query      string
	ActiveOnly bool
	LowStock   bool
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}

	return &ProductDTO{
		ID:             product.ID,
		ShopID:         product.ShopID,
		CategoryID:     product.CategoryID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		DiscountPrice:  product.DiscountPrice,
		StockQuantity:  product.StockQuantity,
		StockStatus:    metrics.StockStatus(product.StockQuantity),
		IsActive:       product.IsActive,
		ImageURL:       product.ImageURL,
		Images:         append([]string{}, product.Images...),
		Specifications: product.Specifications,
		Properties:     product.Properties,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// NewProductSummary builds a list row from the persisted model.
func NewProductSummary(product *models.Product) ProductSummary {
	return ProductSummary{
		ID:            product.ID,
		ShopID:        product.ShopID,
		CategoryID:    product.CategoryID,
		Name:          product.Name,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		StockQuantity: product.StockQuantity,
		StockStatus:   metrics.StockStatus(product.StockQuantity),
		IsActive:      product.IsActive,
		ImageURL:      product.ImageURL,
		CreatedAt:     product.CreatedAt,
	}
}

func (c CreateProductDTO) ToModel() *models.Product {
	return &models.Product{
		ShopID:         c.ShopID,
		CategoryID:     c.CategoryID,
		Name:           c.Name,
		Description:    c.Description,
		Price:          c.Price,
		DiscountPrice:  c.DiscountPrice,
		StockQuantity:  c.StockQuantity,
		IsActive:       true,
		ImageURL:       c.ImageURL,
		Images:         c.Images,
		Specifications: c.Specifications,
		Properties:     c.Properties,
	}
}
