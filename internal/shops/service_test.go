package shops

import (
	"context"
	"testing"
	"time"

	"github.com/shoplane/shoplane-backend/internal/schedule"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeStore struct {
	shops       map[uuid.UUID]*models.Shop
	savedWeek   types.WeekSchedule
	savedActive *bool
	created     *CreateShopDTO
}

func newFakeStore(shops ...*models.Shop) *fakeStore {
	store := &fakeStore{shops: map[uuid.UUID]*models.Shop{}}
	for _, shop := range shops {
		store.shops[shop.ID] = shop
	}
	return store
}

func (f *fakeStore) Create(ctx context.Context, dto CreateShopDTO) (*models.Shop, error) {
	f.created = &dto
	shop := dto.ToModel()
	shop.ID = uuid.New()
	f.shops[shop.ID] = shop
	return shop, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if shop, ok := f.shops[id]; ok {
		return shop, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	var out []models.Shop
	for _, shop := range f.shops {
		if shop.OwnerID == ownerID {
			out = append(out, *shop)
		}
	}
	return out, nil
}

func (f *fakeStore) ListActive(ctx context.Context) ([]models.Shop, error) {
	var out []models.Shop
	for _, shop := range f.shops {
		if shop.IsActive {
			out = append(out, *shop)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, dto UpdateShopDTO) (*models.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if dto.Name != nil {
		shop.Name = *dto.Name
	}
	return shop, nil
}

func (f *fakeStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.savedActive = &active
	if shop, ok := f.shops[id]; ok {
		shop.IsActive = active
	}
	return nil
}

func (f *fakeStore) UpdateWorkingHours(ctx context.Context, id uuid.UUID, week types.WeekSchedule) error {
	f.savedWeek = week
	if shop, ok := f.shops[id]; ok {
		shop.WorkingHours = week
	}
	return nil
}

func vendorShop(ownerID uuid.UUID) *models.Shop {
	return &models.Shop{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         "Corner Store",
		IsActive:     true,
		WorkingHours: schedule.DefaultWeek(),
		Timezone:     "UTC",
	}
}

func TestCreateAppliesDefaultWeek(t *testing.T) {
	store := newFakeStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateShopDTO{OwnerID: uuid.New(), Name: "Fresh Goods"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dto.WorkingHours) != 7 {
		t.Fatalf("expected default 7-entry week, got %d", len(dto.WorkingHours))
	}
	if dto.Timezone != "UTC" {
		t.Fatalf("expected UTC default, got %q", dto.Timezone)
	}
}

func TestCreateRejectsUnknownTimezone(t *testing.T) {
	store := newFakeStore()
	svc, _ := NewService(store)

	_, err := svc.Create(context.Background(), CreateShopDTO{
		OwnerID:  uuid.New(),
		Name:     "Fresh Goods",
		Timezone: "Europe/Pariss",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.created != nil {
		t.Fatal("shop must not be created with a bad timezone")
	}
}

func TestUpdateRejectsUnknownTimezone(t *testing.T) {
	owner := uuid.New()
	shop := vendorShop(owner)
	svc, _ := NewService(newFakeStore(shop))

	tz := "Mars/Olympus_Mons"
	_, err := svc.Update(context.Background(),
		Actor{UserID: owner, Role: enums.RoleVendor},
		shop.ID, UpdateShopDTO{Timezone: &tz})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateForbiddenForForeignVendor(t *testing.T) {
	owner := uuid.New()
	shop := vendorShop(owner)
	svc, _ := NewService(newFakeStore(shop))

	name := "Hijacked"
	_, err := svc.Update(context.Background(),
		Actor{UserID: uuid.New(), Role: enums.RoleVendor},
		shop.ID, UpdateShopDTO{Name: &name})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateAllowedForAdmin(t *testing.T) {
	shop := vendorShop(uuid.New())
	svc, _ := NewService(newFakeStore(shop))

	name := "Renamed"
	dto, err := svc.Update(context.Background(),
		Actor{UserID: uuid.New(), Role: enums.RoleAdmin},
		shop.ID, UpdateShopDTO{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Name != "Renamed" {
		t.Fatalf("expected renamed shop, got %q", dto.Name)
	}
}

func TestEditSchedulePersistsResult(t *testing.T) {
	owner := uuid.New()
	shop := vendorShop(owner)
	store := newFakeStore(shop)
	svc, _ := NewService(store)

	week, err := svc.EditSchedule(context.Background(),
		Actor{UserID: owner, Role: enums.RoleVendor},
		shop.ID, ScheduleEdit{Op: EditSetOpenTime, Day: "Monday", Value: "07:30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week[1].OpenTime != "07:30" {
		t.Fatalf("expected edited Monday, got %+v", week[1])
	}
	if store.savedWeek == nil {
		t.Fatal("edited schedule was not persisted")
	}
}

func TestEditScheduleRejectsUnknownOp(t *testing.T) {
	owner := uuid.New()
	shop := vendorShop(owner)
	svc, _ := NewService(newFakeStore(shop))

	_, err := svc.EditSchedule(context.Background(),
		Actor{UserID: owner, Role: enums.RoleVendor},
		shop.ID, ScheduleEdit{Op: "explode"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOpenStatusUsesShopTimezone(t *testing.T) {
	shop := vendorShop(uuid.New())
	shop.Timezone = "America/New_York"
	svc, _ := NewService(newFakeStore(shop))

	// Monday 13:30 UTC is 09:30 in New York, inside the default weekday hours.
	open, err := svc.OpenStatus(context.Background(), shop.ID, time.Date(2026, 8, 17, 13, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open {
		t.Fatal("expected shop open in its local morning")
	}

	// Monday 12:00 UTC is 08:00 in New York, before opening.
	open, err = svc.OpenStatus(context.Background(), shop.ID, time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if open {
		t.Fatal("expected shop closed before local opening time")
	}
}

func TestSetActiveSoftDisables(t *testing.T) {
	owner := uuid.New()
	shop := vendorShop(owner)
	store := newFakeStore(shop)
	svc, _ := NewService(store)

	if err := svc.SetActive(context.Background(), Actor{UserID: owner, Role: enums.RoleVendor}, shop.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.savedActive == nil || *store.savedActive {
		t.Fatal("expected shop deactivated")
	}
}
