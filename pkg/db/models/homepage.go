package models

import (
	"time"

	"github.com/google/uuid"
)

// HomepageOffer is a named product grouping surfaced on the storefront
// homepage, joined to products via homepage_offer_products.
type HomepageOffer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"type:text;not null"`
	ImageURL  string    `gorm:"column:image_url;type:text"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// HomepageOfferProduct joins offers to products.
type HomepageOfferProduct struct {
	OfferID   uuid.UUID `gorm:"column:offer_id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the pluralized default.
func (HomepageOfferProduct) TableName() string {
	return "homepage_offer_products"
}

// HomepageFeaturedStore pins a shop to a positioned homepage slot.
// Positions are re-enumerated 1..N on every bulk save.
type HomepageFeaturedStore struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID    uuid.UUID `gorm:"column:shop_id;type:uuid;not null;uniqueIndex"`
	Position  int       `gorm:"column:position;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
