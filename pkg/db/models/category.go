package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a one-level tree node: a nil parent marks a main category,
// a set parent marks a sub category. Logo holds either an emoji or an
// image URL, distinguished by the "http" prefix.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid;index"`
	Name        string     `gorm:"type:text;not null"`
	Description *string    `gorm:"column:description"`
	Logo        string     `gorm:"column:logo;not null;default:''"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
