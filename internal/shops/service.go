package shops

import (
	"context"
	"errors"
	"time"

	"github.com/shoplane/shoplane-backend/internal/metrics"
	"github.com/shoplane/shoplane-backend/internal/schedule"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error)
	ListActive(ctx context.Context) ([]models.Shop, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateShopDTO) (*models.Shop, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdateWorkingHours(ctx context.Context, id uuid.UUID, week types.WeekSchedule) error
}

// Actor identifies who is performing a shop operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

// ScheduleEdit names one working-hours editor operation.
type ScheduleEdit struct {
	Op      string             `json:"op"`
	Day     string             `json:"day,omitempty"`
	Value   string             `json:"value,omitempty"`
	Open    bool               `json:"open,omitempty"`
	Entries types.WeekSchedule `json:"entries,omitempty"`
}

// Editor operation names accepted by EditSchedule.
const (
	EditSetDayOpen   = "set_day_open"
	EditSetOpenTime  = "set_open_time"
	EditSetCloseTime = "set_close_time"
	EditCopyTo       = "copy_to"
	EditBulkSet      = "bulk_set"
)

// Service defines storefront operations.
type Service interface {
	Create(ctx context.Context, dto CreateShopDTO) (*ShopDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ShopDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]ShopDTO, error)
	ListActive(ctx context.Context) ([]ShopDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, dto UpdateShopDTO) (*ShopDTO, error)
	SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error
	EditSchedule(ctx context.Context, actor Actor, id uuid.UUID, edit ScheduleEdit) (types.WeekSchedule, error)
	OpenStatus(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

type service struct {
	store Store
}

// NewService wires shop dependencies.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shops store required")
	}
	return &service{store: store}, nil
}

func (s *service) Create(ctx context.Context, dto CreateShopDTO) (*ShopDTO, error) {
	if dto.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name required")
	}
	if err := validateTimezone(dto.Timezone); err != nil {
		return nil, err
	}
	if dto.WorkingHours == nil {
		dto.WorkingHours = schedule.DefaultWeek()
	}

	shop, err := s.store.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return FromModel(shop), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ShopDTO, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(shop), nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]ShopDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	shops, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned shops")
	}
	return toDTOs(shops), nil
}

func (s *service) ListActive(ctx context.Context) ([]ShopDTO, error) {
	shops, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return toDTOs(shops), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, dto UpdateShopDTO) (*ShopDTO, error) {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	if dto.Timezone != nil {
		if err := validateTimezone(*dto.Timezone); err != nil {
			return nil, err
		}
	}

	shop, err := s.store.Update(ctx, id, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return FromModel(shop), nil
}

func (s *service) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle shop")
	}
	return nil
}

func (s *service) EditSchedule(ctx context.Context, actor Actor, id uuid.UUID, edit ScheduleEdit) (types.WeekSchedule, error) {
	shop, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	current := schedule.Normalize(shop.WorkingHours)
	var next types.WeekSchedule
	switch edit.Op {
	case EditSetDayOpen:
		next, err = schedule.SetDayOpen(current, edit.Day, edit.Open)
	case EditSetOpenTime:
		next, err = schedule.SetOpenTime(current, edit.Day, edit.Value)
	case EditSetCloseTime:
		next, err = schedule.SetCloseTime(current, edit.Day, edit.Value)
	case EditCopyTo:
		next, err = schedule.CopyTo(current, edit.Day)
	case EditBulkSet:
		next, err = schedule.BulkSet(edit.Entries)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown schedule operation")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "edit schedule")
	}

	if err := s.store.UpdateWorkingHours(ctx, id, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save schedule")
	}
	return next, nil
}

func (s *service) OpenStatus(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return false, err
	}

	open, err := metrics.ShopOpenAt(schedule.Normalize(shop.WorkingHours), shop.Timezone, now)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open status")
	}
	return open, nil
}

func (s *service) loadShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	shop, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

// authorize loads the shop and verifies the actor may manage it. Admins
// manage any shop, vendors only their own.
func (s *service) authorize(ctx context.Context, actor Actor, id uuid.UUID) (*models.Shop, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == enums.RoleAdmin {
		return shop, nil
	}
	if actor.Role == enums.RoleVendor && shop.OwnerID == actor.UserID {
		return shop, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
}

// validateTimezone rejects unknown IANA zone names at write time so a
// typo does not surface later as an open-status failure. Empty means
// the repository default applies.
func validateTimezone(tz string) error {
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown timezone")
	}
	return nil
}

func toDTOs(shops []models.Shop) []ShopDTO {
	out := make([]ShopDTO, 0, len(shops))
	for i := range shops {
		out = append(out, *FromModel(&shops[i]))
	}
	return out
}
