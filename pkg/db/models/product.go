package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/shoplane/shoplane-backend/pkg/types"
)

// Product belongs to exactly one shop and one category.
type Product struct {
	ID             uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID         uuid.UUID               `gorm:"column:shop_id;type:uuid;not null;index"`
	CategoryID     uuid.UUID               `gorm:"column:category_id;type:uuid;not null;index"`
	Name           string                  `gorm:"type:text;not null"`
	Description    *string                 `gorm:"column:description"`
	Price          decimal.Decimal         `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountPrice  *decimal.Decimal        `gorm:"column:discount_price;type:numeric(12,2)"`
	StockQuantity  int                     `gorm:"column:stock_quantity;not null;default:0"`
	IsActive       bool                    `gorm:"column:is_active;not null;default:true"`
	ImageURL       *string                 `gorm:"column:image_url"`
	Images         pq.StringArray          `gorm:"column:images;type:text[]"`
	Specifications types.SpecificationList `gorm:"column:specifications;type:jsonb"`
	Properties     types.PropertyList      `gorm:"column:properties;type:jsonb"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
