package scoping

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind classifies how much data a dashboard actor may see.
type Kind string

const (
	// KindAll grants unrestricted access to every shop's data.
	KindAll Kind = "all"
	// KindShopSet restricts access to an explicit set of shops.
	KindShopSet Kind = "shop_set"
	// KindEmpty means the actor could have shops but owns none. Queries
	// short-circuit to empty results without touching the database.
	KindEmpty Kind = "empty"
	// KindNotAvailable means the surface does not exist for this actor.
	// It is not the same as owning no shops.
	KindNotAvailable Kind = "not_available"
)

// Scope is the data boundary resolved for one actor on one resource.
type Scope struct {
	Kind     Kind
	Resource Resource
	ShopIDs  []uuid.UUID
}

// All returns the unrestricted scope.
func All(resource Resource) Scope {
	return Scope{Kind: KindAll, Resource: resource}
}

// ForShops returns a scope limited to the given shops. An empty set
// collapses to the empty scope.
func ForShops(resource Resource, ids []uuid.UUID) Scope {
	if len(ids) == 0 {
		return Scope{Kind: KindEmpty, Resource: resource}
	}
	return Scope{Kind: KindShopSet, Resource: resource, ShopIDs: append([]uuid.UUID(nil), ids...)}
}

// NotAvailable returns the scope for actors without a dashboard surface.
func NotAvailable(resource Resource) Scope {
	return Scope{Kind: KindNotAvailable, Resource: resource}
}

// AllowsAll reports whether the scope is unrestricted.
func (s Scope) AllowsAll() bool {
	return s.Kind == KindAll
}

// IsEmpty reports whether queries should short-circuit to empty results.
func (s Scope) IsEmpty() bool {
	return s.Kind == KindEmpty
}

// IsAvailable reports whether the actor has a dashboard surface at all.
func (s Scope) IsAvailable() bool {
	return s.Kind != KindNotAvailable
}

// Contains reports whether the shop falls inside the scope.
func (s Scope) Contains(shopID uuid.UUID) bool {
	switch s.Kind {
	case KindAll:
		return true
	case KindShopSet:
		for _, id := range s.ShopIDs {
			if id == shopID {
				return true
			}
		}
	}
	return false
}

// Apply narrows a query to the scope using the given shop id column.
// Callers must check IsEmpty and IsAvailable first. Apply does not
// guard against them.
func (s Scope) Apply(query *gorm.DB, column string) *gorm.DB {
	if s.Kind != KindShopSet {
		return query
	}
	return query.Where(column+" IN ?", s.ShopIDs)
}
