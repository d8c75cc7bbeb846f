package categories

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
)

// LogoKind distinguishes emoji logos from uploaded image logos.
type LogoKind string

const (
	LogoKindEmoji LogoKind = "emoji"
	LogoKindImage LogoKind = "image"
)

// CategoryDTO is the transport shape for categories. IsMain and
// ParentName are derived, not stored.
type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ParentName  *string    `json:"parent_name,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Logo        string     `json:"logo"`
	LogoKind    LogoKind   `json:"logo_kind"`
	IsMain      bool       `json:"is_main"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCategoryDTO holds the data required to persist a new category.
type CreateCategoryDTO struct {
	ParentID    *uuid.UUID
	Name        string
	Description *string
	Logo        string
}

// UpdateCategoryDTO carries editable fields. Nil means leave unchanged.
// SetParent distinguishes "no change" from "clear the parent".
type UpdateCategoryDTO struct {
	Name        *string
	Description *string
	Logo        *string
	ParentID    *uuid.UUID
	SetParent   bool
}

// ClassifyLogo tags a stored logo as an image when it carries an http
// prefix and as an emoji otherwise.
func ClassifyLogo(logo string) LogoKind {
	if strings.HasPrefix(logo, "http") {
		return LogoKindImage
	}
	return LogoKindEmoji
}

// FromModel maps a category row plus its optional resolved parent name.
func FromModel(c *models.Category, parentName *string) *CategoryDTO {
	if c == nil {
		return nil
	}

	return &CategoryDTO{
		ID:          c.ID,
		ParentID:    c.ParentID,
		ParentName:  parentName,
		Name:        c.Name,
		Description: c.Description,
		Logo:        c.Logo,
		LogoKind:    ClassifyLogo(c.Logo),
		IsMain:      c.ParentID == nil,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c CreateCategoryDTO) ToModel() *models.Category {
	return &models.Category{
		ParentID:    c.ParentID,
		Name:        c.Name,
		Description: c.Description,
		Logo:        c.Logo,
	}
}
