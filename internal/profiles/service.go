package profiles

import (
	"context"
	"errors"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the persistence surface the service needs.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*models.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.Role) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, page pagination.Params) (*ListResult, error)
}

// Service defines profile read/update operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, dto UpdateProfileDTO) (*ProfileDTO, error)
	ChangeRole(ctx context.Context, userID uuid.UUID, role enums.Role) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	List(ctx context.Context, page pagination.Params) (*ListResult, error)
}

type service struct {
	store Store
}

// NewService wires profile dependencies.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profiles store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	profile, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, dto UpdateProfileDTO) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	profile, err := s.store.Update(ctx, userID, dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(profile), nil
}

func (s *service) ChangeRole(ctx context.Context, userID uuid.UUID, role enums.Role) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	if _, err := s.store.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if err := s.store.UpdateRole(ctx, userID, role); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "change role")
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	if _, err := s.store.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if err := s.store.SetActive(ctx, userID, active); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set profile active")
	}
	return nil
}

func (s *service) List(ctx context.Context, page pagination.Params) (*ListResult, error) {
	result, err := s.store.List(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list profiles")
	}
	return result, nil
}
