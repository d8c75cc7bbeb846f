package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	"github.com/shoplane/shoplane-backend/pkg/types"
)

// ProfileDTO is the transport shape that omits sensitive credentials.
type ProfileDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FullName    *string        `json:"full_name,omitempty"`
	Role        enums.Role     `json:"role"`
	AvatarURL   *string        `json:"avatar_url,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *types.Address `json:"address,omitempty"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ListResult wraps a page of profiles with the next-page cursor.
type ListResult struct {
	Profiles   []ProfileDTO `json:"profiles"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// CreateProfileDTO holds the data required by the repo to persist a new profile.
type CreateProfileDTO struct {
	Email        string
	PasswordHash string
	FullName     *string
	Role         enums.Role
	Phone        *string
	IsActive     *bool
}

// UpdateProfileDTO carries the self-service editable fields. Nil means leave unchanged.
type UpdateProfileDTO struct {
	FullName  *string
	Phone     *string
	AvatarURL *string
	Address   *types.Address
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		ID:          p.ID,
		Email:       p.Email,
		FullName:    p.FullName,
		Role:        p.Role,
		AvatarURL:   p.AvatarURL,
		Phone:       p.Phone,
		Address:     p.Address,
		IsActive:    p.IsActive,
		LastLoginAt: p.LastLoginAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (c CreateProfileDTO) ToModel() *models.Profile {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.RoleCustomer
	}

	return &models.Profile{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		Role:         role,
		Phone:        c.Phone,
		IsActive:     isActive,
	}
}
