package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoplane/shoplane-backend/pkg/types"
)

// Shop is a vendor storefront. Deactivation uses is_active rather than
// deletion in most flows; hard delete cascades to products at the
// database layer.
type Shop struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID            uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;index"`
	Name               string             `gorm:"type:text;not null"`
	Description        *string            `gorm:"column:description"`
	Email              *string            `gorm:"column:email"`
	Phone              *string            `gorm:"column:phone"`
	Address            *types.Address     `gorm:"column:address;type:jsonb"`
	LogoURL            *string            `gorm:"column:logo_url"`
	BackgroundImageURL *string            `gorm:"column:background_image_url"`
	IsActive           bool               `gorm:"column:is_active;not null;default:true"`
	WorkingHours       types.WeekSchedule `gorm:"column:working_hours;type:jsonb"`
	Timezone           string             `gorm:"column:timezone;not null;default:'UTC'"`
	DeliveryTimeFrom   int                `gorm:"column:delivery_time_from;not null;default:0"`
	DeliveryTimeTo     int                `gorm:"column:delivery_time_to;not null;default:0"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
