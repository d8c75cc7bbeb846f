package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/shoplane-backend/internal/metrics"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
)

type fakeScopeResolver struct {
	scopes map[scoping.Resource]scoping.Scope
	err    error
}

func (f *fakeScopeResolver) ForRole(_ context.Context, _ enums.Role, _ uuid.UUID, resource scoping.Resource) (scoping.Scope, error) {
	if f.err != nil {
		return scoping.NotAvailable(resource), f.err
	}
	return f.scopes[resource], nil
}

type fakeOrderStats struct {
	mu          sync.Mutex
	countCalls  int
	rowCalls    int
	countsByDay map[string]int64
	rows        []metrics.RevenueRow
	err         error
}

func (f *fakeOrderStats) Count(_ context.Context, _ scoping.Scope, since, until time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	if f.err != nil {
		return 0, f.err
	}
	key := since.Format(time.RFC3339) + "|" + until.Format(time.RFC3339)
	if n, ok := f.countsByDay[key]; ok {
		return n, nil
	}
	return 0, nil
}

func (f *fakeOrderStats) RevenueRows(_ context.Context, _ scoping.Scope, since, until time.Time) ([]metrics.RevenueRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rowCalls++
	if f.err != nil {
		return nil, f.err
	}
	if since.IsZero() && until.IsZero() {
		return f.rows, nil
	}
	return nil, nil
}

type fakeProductStats struct {
	mu       sync.Mutex
	calls    int
	lowStock int64
	err      error
}

func (f *fakeProductStats) CountLowStock(_ context.Context, _ scoping.Scope) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.lowStock, nil
}

func allScopes() map[scoping.Resource]scoping.Scope {
	return map[scoping.Resource]scoping.Scope{
		scoping.ResourceOrders:   scoping.All(scoping.ResourceOrders),
		scoping.ResourceRevenue:  scoping.All(scoping.ResourceRevenue),
		scoping.ResourceProducts: scoping.All(scoping.ResourceProducts),
	}
}

func emptyScopes() map[scoping.Resource]scoping.Scope {
	return map[scoping.Resource]scoping.Scope{
		scoping.ResourceOrders:   scoping.ForShops(scoping.ResourceOrders, nil),
		scoping.ResourceRevenue:  scoping.ForShops(scoping.ResourceRevenue, nil),
		scoping.ResourceProducts: scoping.ForShops(scoping.ResourceProducts, nil),
	}
}

func TestStatsAggregatesTotals(t *testing.T) {
	now := time.Date(2026, time.March, 12, 15, 0, 0, 0, time.UTC)
	dayStart := metrics.DayStart(now)

	orderID := uuid.New()
	orders := &fakeOrderStats{
		countsByDay: map[string]int64{
			time.Time{}.Format(time.RFC3339) + "|" + time.Time{}.Format(time.RFC3339): 4,
			dayStart.Format(time.RFC3339) + "|" + now.Format(time.RFC3339):            2,
		},
		rows: []metrics.RevenueRow{
			{OrderID: orderID, PaymentStatus: enums.PaymentStatusPaid, TotalAmount: decimal.NewFromInt(100)},
			{OrderID: orderID, PaymentStatus: enums.PaymentStatusPaid, TotalAmount: decimal.NewFromInt(100)},
			{OrderID: uuid.New(), PaymentStatus: enums.PaymentStatusPaid, TotalAmount: decimal.NewFromInt(60)},
		},
	}
	products := &fakeProductStats{lowStock: 3}

	svc, err := NewService(&fakeScopeResolver{scopes: allScopes()}, orders, products)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), enums.RoleAdmin, uuid.New(), now)
	require.NoError(t, err)

	assert.True(t, stats.Available)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, "160", stats.TotalRevenue.String())
	assert.Equal(t, "40", stats.AverageOrderValue.String())
	assert.Equal(t, int64(2), stats.Today.Orders)
	assert.Equal(t, 100, stats.Today.OrdersGrowth)
	assert.Equal(t, int64(3), stats.LowStockProducts)
}

func TestStatsEmptyScopeSkipsSources(t *testing.T) {
	orders := &fakeOrderStats{}
	products := &fakeProductStats{}

	svc, err := NewService(&fakeScopeResolver{scopes: emptyScopes()}, orders, products)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), enums.RoleVendor, uuid.New(), time.Now())
	require.NoError(t, err)

	assert.True(t, stats.Available)
	assert.Equal(t, int64(0), stats.TotalOrders)
	assert.Equal(t, "0", stats.TotalRevenue.String())
	assert.Equal(t, 0, orders.countCalls)
	assert.Equal(t, 0, orders.rowCalls)
	assert.Equal(t, 0, products.calls)
}

func TestStatsUnavailableScopeForbidden(t *testing.T) {
	scopes := map[scoping.Resource]scoping.Scope{
		scoping.ResourceOrders:   scoping.NotAvailable(scoping.ResourceOrders),
		scoping.ResourceRevenue:  scoping.NotAvailable(scoping.ResourceRevenue),
		scoping.ResourceProducts: scoping.NotAvailable(scoping.ResourceProducts),
	}
	svc, err := NewService(&fakeScopeResolver{scopes: scopes}, &fakeOrderStats{}, &fakeProductStats{})
	require.NoError(t, err)

	_, err = svc.Stats(context.Background(), enums.RoleCustomer, uuid.New(), time.Now())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestStatsSourceFailure(t *testing.T) {
	orders := &fakeOrderStats{err: assert.AnError}
	svc, err := NewService(&fakeScopeResolver{scopes: allScopes()}, orders, &fakeProductStats{})
	require.NoError(t, err)

	_, err = svc.Stats(context.Background(), enums.RoleAdmin, uuid.New(), time.Now())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestStatsFansOutAllWindows(t *testing.T) {
	orders := &fakeOrderStats{}
	svc, err := NewService(&fakeScopeResolver{scopes: allScopes()}, orders, &fakeProductStats{})
	require.NoError(t, err)

	_, err = svc.Stats(context.Background(), enums.RoleAdmin, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 7, orders.countCalls)
	assert.Equal(t, 7, orders.rowCalls)
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
