package scoping

import (
	"context"

	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/google/uuid"
)

// Resource names a scoped data surface.
type Resource string

const (
	ResourceProducts Resource = "products"
	ResourceOrders   Resource = "orders"
	ResourceRevenue  Resource = "revenue"
)

// ShopSource lists the shops an owner controls.
type ShopSource interface {
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

// Resolver maps an actor's role onto a data scope.
type Resolver struct {
	shops ShopSource
}

// NewResolver wires the resolver dependencies.
func NewResolver(shops ShopSource) (*Resolver, error) {
	if shops == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shop source required")
	}
	return &Resolver{shops: shops}, nil
}

// ForRole resolves the scope for the given role and user on a resource.
// Admins see everything. Vendors see the union of the shops they own,
// collapsing to the empty scope when they own none. Customers and staff
// have no dashboard data surface.
func (r *Resolver) ForRole(ctx context.Context, role enums.Role, userID uuid.UUID, resource Resource) (Scope, error) {
	switch role {
	case enums.RoleAdmin:
		return All(resource), nil

	case enums.RoleVendor:
		if userID == uuid.Nil {
			return NotAvailable(resource), pkgerrors.New(pkgerrors.CodeValidation, "user id required")
		}
		ids, err := r.shops.ListIDsByOwner(ctx, userID)
		if err != nil {
			return NotAvailable(resource), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned shops")
		}
		return ForShops(resource, ids), nil

	default:
		return NotAvailable(resource), nil
	}
}
