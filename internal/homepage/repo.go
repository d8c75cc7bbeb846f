package homepage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
)

// Repository persists homepage curation rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreateOffer(ctx context.Context, offer *models.HomepageOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *Repository) FindOffer(ctx context.Context, id uuid.UUID) (*models.HomepageOffer, error) {
	var offer models.HomepageOffer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *Repository) ListOffers(ctx context.Context, activeOnly bool) ([]models.HomepageOffer, error) {
	qb := r.db.WithContext(ctx).Model(&models.HomepageOffer{})
	if activeOnly {
		qb = qb.Where("is_active = TRUE")
	}
	var offers []models.HomepageOffer
	if err := qb.Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *Repository) UpdateOffer(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.HomepageOffer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.HomepageOffer{}, "id = ?", id).Error
}

// OfferProductIDs returns the product ids currently joined to the offer.
func (r *Repository) OfferProductIDs(ctx context.Context, offerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.HomepageOfferProduct{}).
		Where("offer_id = ?", offerID).
		Order("created_at ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) AddOfferProducts(ctx context.Context, offerID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([]models.HomepageOfferProduct, 0, len(productIDs))
	for _, id := range productIDs {
		rows = append(rows, models.HomepageOfferProduct{OfferID: offerID, ProductID: id})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *Repository) RemoveOfferProducts(ctx context.Context, offerID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("offer_id = ? AND product_id IN ?", offerID, productIDs).
		Delete(&models.HomepageOfferProduct{}).Error
}

func (r *Repository) ListFeatured(ctx context.Context, activeOnly bool) ([]models.HomepageFeaturedStore, error) {
	qb := r.db.WithContext(ctx).Model(&models.HomepageFeaturedStore{})
	if activeOnly {
		qb = qb.Where("is_active = TRUE")
	}
	var rows []models.HomepageFeaturedStore
	if err := qb.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertFeatured writes the given slots, keyed by shop id.
func (r *Repository) UpsertFeatured(ctx context.Context, rows []models.HomepageFeaturedStore) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "is_active", "updated_at"}),
		}).
		Create(&rows).Error
}

func (r *Repository) RemoveFeatured(ctx context.Context, shopIDs []uuid.UUID) error {
	if len(shopIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("shop_id IN ?", shopIDs).
		Delete(&models.HomepageFeaturedStore{}).Error
}
