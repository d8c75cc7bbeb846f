package shops

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/types"
)

// ShopDTO is the transport shape for storefronts.
type ShopDTO struct {
	ID                 uuid.UUID          `json:"id"`
	OwnerID            uuid.UUID          `json:"owner_id"`
	Name               string             `json:"name"`
	Description        *string            `json:"description,omitempty"`
	Email              *string            `json:"email,omitempty"`
	Phone              *string            `json:"phone,omitempty"`
	Address            *types.Address     `json:"address,omitempty"`
	LogoURL            *string            `json:"logo_url,omitempty"`
	BackgroundImageURL *string            `json:"background_image_url,omitempty"`
	IsActive           bool               `json:"is_active"`
	WorkingHours       types.WeekSchedule `json:"working_hours"`
	Timezone           string             `json:"timezone"`
	DeliveryTimeFrom   int                `json:"delivery_time_from"`
	DeliveryTimeTo     int                `json:"delivery_time_to"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// CreateShopDTO holds the data required to persist a new shop.
type CreateShopDTO struct {
	OwnerID          uuid.UUID
	Name             string
	Description      *string
	Email            *string
	Phone            *string
	Address          *types.Address
	Timezone         string
	WorkingHours     types.WeekSchedule
	DeliveryTimeFrom int
	DeliveryTimeTo   int
}

// UpdateShopDTO carries editable shop fields. Nil means leave unchanged.
type UpdateShopDTO struct {
	Name               *string
	Description        *string
	Email              *string
	Phone              *string
	Address            *types.Address
	LogoURL            *string
	BackgroundImageURL *string
	Timezone           *string
	DeliveryTimeFrom   *int
	DeliveryTimeTo     *int
}

func FromModel(s *models.Shop) *ShopDTO {
	if s == nil {
		return nil
	}

	return &ShopDTO{
		ID:                 s.ID,
		OwnerID:            s.OwnerID,
		Name:               s.Name,
		Description:        s.Description,
		Email:              s.Email,
		Phone:              s.Phone,
		Address:            s.Address,
		LogoURL:            s.LogoURL,
		BackgroundImageURL: s.BackgroundImageURL,
		IsActive:           s.IsActive,
		WorkingHours:       s.WorkingHours,
		Timezone:           s.Timezone,
		DeliveryTimeFrom:   s.DeliveryTimeFrom,
		DeliveryTimeTo:     s.DeliveryTimeTo,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (c CreateShopDTO) ToModel() *models.Shop {
	timezone := c.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return &models.Shop{
		OwnerID:          c.OwnerID,
		Name:             c.Name,
		Description:      c.Description,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		IsActive:         true,
		WorkingHours:     c.WorkingHours,
		Timezone:         timezone,
		DeliveryTimeFrom: c.DeliveryTimeFrom,
		DeliveryTimeTo:   c.DeliveryTimeTo,
	}
}
