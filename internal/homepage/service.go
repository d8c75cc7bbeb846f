// Package homepage manages the curated storefront surface: named offer
// groupings and the positioned featured-store strip.
package homepage

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateOffer(ctx context.Context, offer *models.HomepageOffer) error
	FindOffer(ctx context.Context, id uuid.UUID) (*models.HomepageOffer, error)
	ListOffers(ctx context.Context, activeOnly bool) ([]models.HomepageOffer, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteOffer(ctx context.Context, id uuid.UUID) error
	OfferProductIDs(ctx context.Context, offerID uuid.UUID) ([]uuid.UUID, error)
	AddOfferProducts(ctx context.Context, offerID uuid.UUID, productIDs []uuid.UUID) error
	RemoveOfferProducts(ctx context.Context, offerID uuid.UUID, productIDs []uuid.UUID) error
	ListFeatured(ctx context.Context, activeOnly bool) ([]models.HomepageFeaturedStore, error)
	UpsertFeatured(ctx context.Context, rows []models.HomepageFeaturedStore) error
	RemoveFeatured(ctx context.Context, shopIDs []uuid.UUID) error
}

// OfferDTO is an offer with its joined product ids.
type OfferDTO struct {
	ID         uuid.UUID   `json:"id"`
	Title      string      `json:"title"`
	ImageURL   string      `json:"image_url,omitempty"`
	IsActive   bool        `json:"is_active"`
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// CreateOfferDTO carries the writable offer fields.
type CreateOfferDTO struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url"`
}

// UpdateOfferDTO applies partial offer updates.
type UpdateOfferDTO struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
	IsActive *bool   `json:"is_active"`
}

// FeaturedStoreDTO is one positioned featured-store slot.
type FeaturedStoreDTO struct {
	ShopID   uuid.UUID `json:"shop_id"`
	Position int       `json:"position"`
	IsActive bool      `json:"is_active"`
}

// Service curates the homepage.
type Service interface {
	CreateOffer(ctx context.Context, dto CreateOfferDTO) (*OfferDTO, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*OfferDTO, error)
	ListOffers(ctx context.Context, activeOnly bool) ([]OfferDTO, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, dto UpdateOfferDTO) (*OfferDTO, error)
	DeleteOffer(ctx context.Context, id uuid.UUID) error
	SaveOfferProducts(ctx context.Context, offerID uuid.UUID, productIDs []uuid.UUID) error
	ListFeatured(ctx context.Context, activeOnly bool) ([]FeaturedStoreDTO, error)
	SaveFeatured(ctx context.Context, shopIDs []uuid.UUID) error
}

type service struct {
	store Store
}

func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "homepage store required")
	}
	return &service{store: store}, nil
}

func (s *service) CreateOffer(ctx context.Context, dto CreateOfferDTO) (*OfferDTO, error) {
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer title is required")
	}
	offer := &models.HomepageOffer{Title: title, ImageURL: dto.ImageURL, IsActive: true}
	if err := s.store.CreateOffer(ctx, offer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create offer")
	}
	return &OfferDTO{ID: offer.ID, Title: offer.Title, ImageURL: offer.ImageURL, IsActive: offer.IsActive, ProductIDs: []uuid.UUID{}}, nil
}

func (s *service) GetOffer(ctx context.Context, id uuid.UUID) (*OfferDTO, error) {
	offer, err := s.loadOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	productIDs, err := s.store.OfferProductIDs(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load offer products")
	}
	return toOfferDTO(offer, productIDs), nil
}

func (s *service) ListOffers(ctx context.Context, activeOnly bool) ([]OfferDTO, error) {
	offers, err := s.store.ListOffers(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list offers")
	}
	out := make([]OfferDTO, 0, len(offers))
	for i := range offers {
		productIDs, err := s.store.OfferProductIDs(ctx, offers[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load offer products")
		}
		out = append(out, *toOfferDTO(&offers[i], productIDs))
	}
	return out, nil
}

func (s *service) UpdateOffer(ctx context.Context, id uuid.UUID, dto UpdateOfferDTO) (*OfferDTO, error) {
	if _, err := s.loadOffer(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if dto.Title != nil {
		title := strings.TrimSpace(*dto.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer title cannot be empty")
		}
		updates["title"] = title
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if len(updates) > 0 {
		if err := s.store.UpdateOffer(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update offer")
		}
	}
	return s.GetOffer(ctx, id)
}

func (s *service) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadOffer(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteOffer(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete offer")
	}
	return nil
}

// SaveOfferProducts reconciles the offer's product join set against the
// desired list. Rows already present are left untouched so their
// created_at ordering survives a save.
func (s *service) SaveOfferProducts(ctx context.Context, offerID uuid.UUID, productIDs []uuid.UUID) error {
	if _, err := s.loadOffer(ctx, offerID); err != nil {
		return err
	}
	desired := dedupe(productIDs)

	current, err := s.store.OfferProductIDs(ctx, offerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load offer products")
	}

	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	var additions []uuid.UUID
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			additions = append(additions, id)
		}
	}
	var removals []uuid.UUID
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			removals = append(removals, id)
		}
	}

	if err := s.store.AddOfferProducts(ctx, offerID, additions); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add offer products")
	}
	if err := s.store.RemoveOfferProducts(ctx, offerID, removals); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove offer products")
	}
	return nil
}

func (s *service) ListFeatured(ctx context.Context, activeOnly bool) ([]FeaturedStoreDTO, error) {
	rows, err := s.store.ListFeatured(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list featured stores")
	}
	out := make([]FeaturedStoreDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FeaturedStoreDTO{ShopID: row.ShopID, Position: row.Position, IsActive: row.IsActive})
	}
	return out, nil
}

// SaveFeatured replaces the featured strip with the given shops in order.
// Positions are re-enumerated 1..N; shops absent from the list are removed.
func (s *service) SaveFeatured(ctx context.Context, shopIDs []uuid.UUID) error {
	desired := dedupe(shopIDs)

	current, err := s.store.ListFeatured(ctx, false)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list featured stores")
	}
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}
	var removals []uuid.UUID
	for _, row := range current {
		if _, ok := desiredSet[row.ShopID]; !ok {
			removals = append(removals, row.ShopID)
		}
	}

	rows := make([]models.HomepageFeaturedStore, 0, len(desired))
	for i, id := range desired {
		rows = append(rows, models.HomepageFeaturedStore{ShopID: id, Position: i + 1, IsActive: true})
	}
	if err := s.store.UpsertFeatured(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save featured stores")
	}
	if err := s.store.RemoveFeatured(ctx, removals); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "prune featured stores")
	}
	return nil
}

func (s *service) loadOffer(ctx context.Context, id uuid.UUID) (*models.HomepageOffer, error) {
	offer, err := s.store.FindOffer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load offer")
	}
	return offer, nil
}

func toOfferDTO(offer *models.HomepageOffer, productIDs []uuid.UUID) *OfferDTO {
	if productIDs == nil {
		productIDs = []uuid.UUID{}
	}
	return &OfferDTO{
		ID:         offer.ID,
		Title:      offer.Title,
		ImageURL:   offer.ImageURL,
		IsActive:   offer.IsActive,
		ProductIDs: productIDs,
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
