// Package dashboard aggregates scoped statistics for the admin surface.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/shoplane/shoplane-backend/internal/metrics"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/google/uuid"
)

// OrderStats is the order-data surface the dashboard reads.
type OrderStats interface {
	Count(ctx context.Context, scope scoping.Scope, since, until time.Time) (int64, error)
	RevenueRows(ctx context.Context, scope scoping.Scope, since, until time.Time) ([]metrics.RevenueRow, error)
}

// ProductStats is the product-data surface the dashboard reads.
type ProductStats interface {
	CountLowStock(ctx context.Context, scope scoping.Scope) (int64, error)
}

// ScopeResolver resolves the caller's data scope per resource.
type ScopeResolver interface {
	ForRole(ctx context.Context, role enums.Role, userID uuid.UUID, resource scoping.Resource) (scoping.Scope, error)
}

// PeriodStats is one time bucket of order and revenue figures.
type PeriodStats struct {
	Orders        int64           `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
	OrdersGrowth  int             `json:"orders_growth"`
	RevenueGrowth int             `json:"revenue_growth"`
}

// Stats is the aggregate dashboard payload.
type Stats struct {
	Available         bool            `json:"available"`
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	Today             PeriodStats     `json:"today"`
	Week              PeriodStats     `json:"week"`
	Month             PeriodStats     `json:"month"`
	LowStockProducts  int64           `json:"low_stock_products"`
}

// Service computes dashboard statistics.
type Service struct {
	scopes   ScopeResolver
	orders   OrderStats
	products ProductStats
}

// NewService wires dashboard dependencies.
func NewService(scopes ScopeResolver, orders OrderStats, products ProductStats) (*Service, error) {
	if scopes == nil || orders == nil || products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dashboard dependencies required")
	}
	return &Service{scopes: scopes, orders: orders, products: products}, nil
}

type window struct {
	since time.Time
	until time.Time
}

// Stats aggregates scoped figures for the caller. The reads fan out in
// parallel; any failure fails the whole aggregate.
func (s *Service) Stats(ctx context.Context, role enums.Role, userID uuid.UUID, now time.Time) (*Stats, error) {
	orderScope, err := s.scopes.ForRole(ctx, role, userID, scoping.ResourceOrders)
	if err != nil {
		return nil, err
	}
	if !orderScope.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}

	revenueScope, err := s.scopes.ForRole(ctx, role, userID, scoping.ResourceRevenue)
	if err != nil {
		return nil, err
	}
	productScope, err := s.scopes.ForRole(ctx, role, userID, scoping.ResourceProducts)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Available:         true,
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		Today:             zeroPeriod(),
		Week:              zeroPeriod(),
		Month:             zeroPeriod(),
	}
	if orderScope.IsEmpty() {
		return stats, nil
	}

	dayStart := metrics.DayStart(now)
	weekStart := metrics.WeekStart(now)
	monthStart := metrics.MonthStart(now)

	today := window{since: dayStart, until: now}
	yesterday := window{since: dayStart.AddDate(0, 0, -1), until: dayStart}
	week := window{since: weekStart, until: now}
	prevWeek := window{since: weekStart.AddDate(0, 0, -7), until: weekStart}
	month := window{since: monthStart, until: now}
	prevMonth := window{since: monthStart.AddDate(0, -1, 0), until: monthStart}
	all := window{}

	type bucket struct {
		orders  int64
		revenue decimal.Decimal
	}
	buckets := make([]bucket, 7)
	windows := []window{all, today, yesterday, week, prevWeek, month, prevMonth}

	g, gctx := errgroup.WithContext(ctx)
	for i := range windows {
		i := i
		g.Go(func() error {
			count, err := s.orders.Count(gctx, orderScope, windows[i].since, windows[i].until)
			if err != nil {
				return err
			}
			rows, err := s.orders.RevenueRows(gctx, revenueScope, windows[i].since, windows[i].until)
			if err != nil {
				return err
			}
			buckets[i] = bucket{orders: count, revenue: metrics.RevenueTotal(rows)}
			return nil
		})
	}

	var lowStock int64
	g.Go(func() error {
		if productScope.IsEmpty() || !productScope.IsAvailable() {
			return nil
		}
		count, err := s.products.CountLowStock(gctx, productScope)
		if err != nil {
			return err
		}
		lowStock = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate dashboard stats")
	}

	allB, todayB, yesterdayB := buckets[0], buckets[1], buckets[2]
	weekB, prevWeekB, monthB, prevMonthB := buckets[3], buckets[4], buckets[5], buckets[6]

	stats.TotalOrders = allB.orders
	stats.TotalRevenue = allB.revenue
	stats.AverageOrderValue = metrics.AverageOrderValue(allB.revenue, allB.orders)
	stats.Today = periodStats(todayB.orders, todayB.revenue, yesterdayB.orders, yesterdayB.revenue)
	stats.Week = periodStats(weekB.orders, weekB.revenue, prevWeekB.orders, prevWeekB.revenue)
	stats.Month = periodStats(monthB.orders, monthB.revenue, prevMonthB.orders, prevMonthB.revenue)
	stats.LowStockProducts = lowStock
	return stats, nil
}

func periodStats(orders int64, revenue decimal.Decimal, prevOrders int64, prevRevenue decimal.Decimal) PeriodStats {
	return PeriodStats{
		Orders:        orders,
		Revenue:       revenue,
		OrdersGrowth:  metrics.Growth(decimal.NewFromInt(orders), decimal.NewFromInt(prevOrders)),
		RevenueGrowth: metrics.Growth(revenue, prevRevenue),
	}
}

func zeroPeriod() PeriodStats {
	return PeriodStats{Revenue: decimal.Zero}
}
