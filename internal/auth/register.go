package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shoplane/shoplane-backend/internal/profiles"
	"github.com/shoplane/shoplane-backend/internal/schedule"
	"github.com/shoplane/shoplane-backend/internal/shops"
	"github.com/shoplane/shoplane-backend/pkg/config"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/security"
)

// RegisterService handles account onboarding. Customer signup creates a
// profile; vendor signup creates the profile and its first shop in one
// transaction so a failed shop insert never leaves an orphan vendor.
type RegisterService interface {
	RegisterCustomer(ctx context.Context, req RegisterRequest) (*profiles.ProfileDTO, error)
	RegisterVendor(ctx context.Context, req VendorRegisterRequest) (*profiles.ProfileDTO, error)
}

// TxRunner executes a function inside a database transaction.
// *db.Client satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error)
}

type registerShopRepository interface {
	Create(ctx context.Context, dto shops.CreateShopDTO) (*models.Shop, error)
}

// RegisterServiceParams packages the dependencies for the registration
// flow. The repo factories default to the real repositories; tests swap
// them for stubs.
type RegisterServiceParams struct {
	DB                 TxRunner
	PasswordConfig     config.PasswordConfig
	ProfileRepoFactory func(tx *gorm.DB) registerProfileRepository
	ShopRepoFactory    func(tx *gorm.DB) registerShopRepository
}

type registerService struct {
	db          TxRunner
	passwordCfg config.PasswordConfig
	profileRepo func(tx *gorm.DB) registerProfileRepository
	shopRepo    func(tx *gorm.DB) registerShopRepository
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	svc := &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		profileRepo: params.ProfileRepoFactory,
		shopRepo:    params.ShopRepoFactory,
	}
	if svc.profileRepo == nil {
		svc.profileRepo = func(tx *gorm.DB) registerProfileRepository {
			return profiles.NewRepository(tx)
		}
	}
	if svc.shopRepo == nil {
		svc.shopRepo = func(tx *gorm.DB) registerShopRepository {
			return shops.NewRepository(tx)
		}
	}
	return svc, nil
}

// RegisterCustomer creates a customer profile. The role is fixed here;
// elevation to vendor or admin is a separate admin operation.
func (s *registerService) RegisterCustomer(ctx context.Context, req RegisterRequest) (*profiles.ProfileDTO, error) {
	email, passwordHash, err := s.prepareCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}

	var created *models.Profile
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		profileRepo := s.profileRepo(tx)
		if err := ensureEmailFree(ctx, profileRepo, email); err != nil {
			return err
		}
		profile, err := profileRepo.Create(ctx, profiles.CreateProfileDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     &fullName,
			Role:         enums.RoleCustomer,
			Phone:        req.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
		}
		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles.FromModel(created), nil
}

// RegisterVendor creates the vendor profile and its first shop. The shop
// opens with the default weekly schedule.
func (s *registerService) RegisterVendor(ctx context.Context, req VendorRegisterRequest) (*profiles.ProfileDTO, error) {
	email, passwordHash, err := s.prepareCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	shopName := strings.TrimSpace(req.ShopName)
	if shopName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}
	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	var created *models.Profile
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		profileRepo := s.profileRepo(tx)
		shopRepo := s.shopRepo(tx)

		if err := ensureEmailFree(ctx, profileRepo, email); err != nil {
			return err
		}
		profile, err := profileRepo.Create(ctx, profiles.CreateProfileDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     &fullName,
			Role:         enums.RoleVendor,
			Phone:        req.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create profile")
		}

		if _, err := shopRepo.Create(ctx, shops.CreateShopDTO{
			OwnerID:      profile.ID,
			Name:         shopName,
			Description:  req.Description,
			Email:        &email,
			Phone:        req.Phone,
			Address:      req.Address,
			Timezone:     timezone,
			WorkingHours: schedule.DefaultWeek(),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shop")
		}
		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles.FromModel(created), nil
}

func (s *registerService) prepareCredentials(email, password string) (string, string, error) {
	clean := strings.ToLower(strings.TrimSpace(email))
	if clean == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(password) < 8 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	return clean, hash, nil
}

func ensureEmailFree(ctx context.Context, repo registerProfileRepository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check profile email")
	}
	return nil
}
