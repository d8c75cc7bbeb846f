package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shoplane/shoplane-backend/internal/profiles"
	"github.com/shoplane/shoplane-backend/internal/shops"
	"github.com/shoplane/shoplane-backend/pkg/config"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/security"
)

type stubTxRunner struct {
	rolledBack bool
}

func (s *stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	if err := fn(nil); err != nil {
		s.rolledBack = true
		return err
	}
	return nil
}

type stubRegisterProfileRepo struct {
	byEmail   map[string]*models.Profile
	created   []*models.Profile
	createErr error
}

func newStubRegisterProfileRepo() *stubRegisterProfileRepo {
	return &stubRegisterProfileRepo{byEmail: map[string]*models.Profile{}}
}

func (s *stubRegisterProfileRepo) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	if p, ok := s.byEmail[email]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterProfileRepo) Create(_ context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FullName:     dto.FullName,
		Role:         dto.Role,
		Phone:        dto.Phone,
		IsActive:     true,
	}
	s.byEmail[dto.Email] = profile
	s.created = append(s.created, profile)
	return profile, nil
}

type stubRegisterShopRepo struct {
	created   []shops.CreateShopDTO
	createErr error
}

func (s *stubRegisterShopRepo) Create(_ context.Context, dto shops.CreateShopDTO) (*models.Shop, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, dto)
	return &models.Shop{ID: uuid.New(), OwnerID: dto.OwnerID, Name: dto.Name}, nil
}

type registerTestSetup struct {
	service  RegisterService
	tx       *stubTxRunner
	profiles *stubRegisterProfileRepo
	shops    *stubRegisterShopRepo
}

func newRegisterTestSetup(t *testing.T) *registerTestSetup {
	t.Helper()
	tx := &stubTxRunner{}
	profileRepo := newStubRegisterProfileRepo()
	shopRepo := &stubRegisterShopRepo{}
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             tx,
		PasswordConfig: config.PasswordConfig{},
		ProfileRepoFactory: func(tx *gorm.DB) registerProfileRepository {
			return profileRepo
		},
		ShopRepoFactory: func(tx *gorm.DB) registerShopRepository {
			return shopRepo
		},
	})
	require.NoError(t, err)
	return &registerTestSetup{service: svc, tx: tx, profiles: profileRepo, shops: shopRepo}
}

func TestRegisterCustomerDefaultsRole(t *testing.T) {
	setup := newRegisterTestSetup(t)

	dto, err := setup.service.RegisterCustomer(context.Background(), RegisterRequest{
		Email:    " New.Customer@Example.com ",
		Password: "password123",
		FullName: "New Customer",
	})
	require.NoError(t, err)

	assert.Equal(t, "new.customer@example.com", dto.Email)
	assert.Equal(t, enums.RoleCustomer, dto.Role)
	assert.Empty(t, setup.shops.created)

	stored := setup.profiles.byEmail["new.customer@example.com"]
	require.NotNil(t, stored)
	ok, err := security.VerifyPassword("password123", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.profiles.byEmail["taken@example.com"] = &models.Profile{ID: uuid.New(), Email: "taken@example.com"}

	_, err := setup.service.RegisterCustomer(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		FullName: "Someone",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterCustomerShortPassword(t *testing.T) {
	setup := newRegisterTestSetup(t)

	_, err := setup.service.RegisterCustomer(context.Background(), RegisterRequest{
		Email:    "a@example.com",
		Password: "short",
		FullName: "A",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRegisterVendorCreatesShopWithDefaultWeek(t *testing.T) {
	setup := newRegisterTestSetup(t)

	dto, err := setup.service.RegisterVendor(context.Background(), VendorRegisterRequest{
		Email:    "owner@example.com",
		Password: "password123",
		FullName: "Shop Owner",
		ShopName: "Corner Shop",
		Timezone: "America/New_York",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleVendor, dto.Role)

	require.Len(t, setup.shops.created, 1)
	shop := setup.shops.created[0]
	assert.Equal(t, dto.ID, shop.OwnerID)
	assert.Equal(t, "Corner Shop", shop.Name)
	assert.Equal(t, "America/New_York", shop.Timezone)

	require.Len(t, shop.WorkingHours, 7)
	assert.Equal(t, "Sunday", shop.WorkingHours[0].Day)
	assert.False(t, shop.WorkingHours[0].IsOpen)
	assert.Equal(t, "Monday", shop.WorkingHours[1].Day)
	assert.True(t, shop.WorkingHours[1].IsOpen)
	assert.Equal(t, "09:00", shop.WorkingHours[1].OpenTime)
}

func TestRegisterVendorShopFailureRollsBack(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.shops.createErr = assert.AnError

	_, err := setup.service.RegisterVendor(context.Background(), VendorRegisterRequest{
		Email:    "owner@example.com",
		Password: "password123",
		FullName: "Shop Owner",
		ShopName: "Corner Shop",
	})
	require.Error(t, err)
	assert.True(t, setup.tx.rolledBack)
}

func TestRegisterVendorRequiresShopName(t *testing.T) {
	setup := newRegisterTestSetup(t)

	_, err := setup.service.RegisterVendor(context.Background(), VendorRegisterRequest{
		Email:    "owner@example.com",
		Password: "password123",
		FullName: "Shop Owner",
		ShopName: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
