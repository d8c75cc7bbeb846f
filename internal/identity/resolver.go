package identity

import (
	"context"
	"errors"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileSource loads the identity record a role is derived from.
type ProfileSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Resolver derives the effective role for a user. A missing profile row
// resolves to the customer default. A lookup failure resolves to
// RoleUnknown, which grants nothing.
type Resolver struct {
	source ProfileSource
}

// NewResolver wires the resolver dependencies.
func NewResolver(source ProfileSource) (*Resolver, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile source required")
	}
	return &Resolver{source: source}, nil
}

// Resolve returns the effective role for the given user.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (enums.Role, error) {
	if userID == uuid.Nil {
		return enums.RoleUnknown, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	profile, err := r.source.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enums.RoleCustomer, nil
		}
		return enums.RoleUnknown, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve role")
	}

	if !profile.Role.IsValid() {
		return enums.RoleCustomer, nil
	}
	return profile.Role, nil
}
