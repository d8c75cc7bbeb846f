package shops

import (
	"context"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes shop persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shops repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new shop and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error) {
	shop := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// FindByID loads a shop by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// ListByOwner returns every shop the owner controls, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

// ListIDsByOwner returns just the ids of the owner's shops.
func (r *Repository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListActive returns all active shops, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&shops).Error
	if err != nil {
		return nil, err
	}
	return shops, nil
}

// Update applies the editable fields and returns the refreshed shop.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateShopDTO) (*models.Shop, error) {
	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
	}
	if dto.Address != nil {
		updates["address"] = dto.Address
	}
	if dto.LogoURL != nil {
		updates["logo_url"] = *dto.LogoURL
	}
	if dto.BackgroundImageURL != nil {
		updates["background_image_url"] = *dto.BackgroundImageURL
	}
	if dto.Timezone != nil {
		updates["timezone"] = *dto.Timezone
	}
	if dto.DeliveryTimeFrom != nil {
		updates["delivery_time_from"] = *dto.DeliveryTimeFrom
	}
	if dto.DeliveryTimeTo != nil {
		updates["delivery_time_to"] = *dto.DeliveryTimeTo
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Shop{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// SetActive toggles the soft-disable flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active).Error
}

// UpdateWorkingHours overwrites the stored schedule.
func (r *Repository) UpdateWorkingHours(ctx context.Context, id uuid.UUID, week types.WeekSchedule) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", id).
		UpdateColumn("working_hours", week).Error
}
