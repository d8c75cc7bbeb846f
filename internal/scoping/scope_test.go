package scoping

import (
	"context"
	"errors"
	"testing"

	"github.com/shoplane/shoplane-backend/pkg/enums"
	"github.com/google/uuid"
)

type fakeShopSource struct {
	ids   []uuid.UUID
	err   error
	calls int
}

func (f *fakeShopSource) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	f.calls++
	return f.ids, f.err
}

func TestForRoleAdminSeesEverything(t *testing.T) {
	source := &fakeShopSource{}
	r, err := NewResolver(source)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	scope, err := r.ForRole(context.Background(), enums.RoleAdmin, uuid.New(), ResourceRevenue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scope.AllowsAll() {
		t.Fatalf("expected unrestricted scope, got %s", scope.Kind)
	}
	if source.calls != 0 {
		t.Fatal("admin scope must not query shop ownership")
	}
}

func TestForRoleVendorGetsShopSet(t *testing.T) {
	shopA, shopB := uuid.New(), uuid.New()
	r, _ := NewResolver(&fakeShopSource{ids: []uuid.UUID{shopA, shopB}})

	scope, err := r.ForRole(context.Background(), enums.RoleVendor, uuid.New(), ResourceProducts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.Kind != KindShopSet {
		t.Fatalf("expected shop set, got %s", scope.Kind)
	}
	if !scope.Contains(shopA) || !scope.Contains(shopB) {
		t.Fatal("scope missing owned shop")
	}
	if scope.Contains(uuid.New()) {
		t.Fatal("scope must reject foreign shop")
	}
}

func TestForRoleVendorWithoutShopsIsEmptyNotUnavailable(t *testing.T) {
	r, _ := NewResolver(&fakeShopSource{})

	scope, err := r.ForRole(context.Background(), enums.RoleVendor, uuid.New(), ResourceProducts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scope.IsEmpty() {
		t.Fatalf("expected empty scope, got %s", scope.Kind)
	}
	if !scope.IsAvailable() {
		t.Fatal("empty scope is still an available surface")
	}
}

func TestForRoleCustomerNotAvailable(t *testing.T) {
	source := &fakeShopSource{}
	r, _ := NewResolver(source)

	scope, err := r.ForRole(context.Background(), enums.RoleCustomer, uuid.New(), ResourceOrders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.IsAvailable() {
		t.Fatal("customer must have no dashboard surface")
	}
	if scope.IsEmpty() {
		t.Fatal("not-available must stay distinct from empty")
	}
	if source.calls != 0 {
		t.Fatal("customer scope must not query shop ownership")
	}
}

func TestForRoleUnknownRoleNotAvailable(t *testing.T) {
	r, _ := NewResolver(&fakeShopSource{})

	scope, err := r.ForRole(context.Background(), enums.RoleUnknown, uuid.New(), ResourceOrders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.IsAvailable() {
		t.Fatal("unknown role must have no dashboard surface")
	}
}

func TestForRoleVendorLookupFailure(t *testing.T) {
	r, _ := NewResolver(&fakeShopSource{err: errors.New("db down")})

	scope, err := r.ForRole(context.Background(), enums.RoleVendor, uuid.New(), ResourceProducts)
	if err == nil {
		t.Fatal("expected error")
	}
	if scope.IsAvailable() {
		t.Fatal("failed resolution must not grant a surface")
	}
}

func TestForRoleStaffNotAvailable(t *testing.T) {
	r, _ := NewResolver(&fakeShopSource{})

	scope, err := r.ForRole(context.Background(), enums.RoleStaff, uuid.New(), ResourceRevenue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.IsAvailable() {
		t.Fatal("staff must have no dashboard surface")
	}
}
