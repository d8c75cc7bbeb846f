// Package metrics derives dashboard figures from raw order and stock data.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoplane/shoplane-backend/pkg/enums"
	"github.com/shoplane/shoplane-backend/pkg/types"
	"github.com/google/uuid"
)

// LowStockThreshold is the quantity below which a product counts as low stock.
const LowStockThreshold = 10

// RevenueRow is one order-level row feeding revenue totals. Queries that
// join through order items fan out to one row per item; dedupe by order
// id keeps each order counted once.
type RevenueRow struct {
	OrderID       uuid.UUID
	PaymentStatus enums.PaymentStatus
	TotalAmount   decimal.Decimal
}

// RevenueTotal sums paid orders, counting each order id exactly once.
func RevenueTotal(rows []RevenueRow) decimal.Decimal {
	total := decimal.Zero
	seen := map[uuid.UUID]struct{}{}
	for _, row := range rows {
		if row.PaymentStatus != enums.PaymentStatusPaid {
			continue
		}
		if _, dup := seen[row.OrderID]; dup {
			continue
		}
		seen[row.OrderID] = struct{}{}
		total = total.Add(row.TotalAmount)
	}
	return total
}

// Growth returns the percentage change from previous to current, rounded
// to the nearest integer. A zero previous value maps to 100 when there is
// any current value and 0 otherwise.
func Growth(current, previous decimal.Decimal) int {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	ratio, _ := current.Sub(previous).Div(previous).Float64()
	return int(math.Round(ratio * 100))
}

// AverageOrderValue divides revenue by order count, zero when there are no orders.
func AverageOrderValue(revenue decimal.Decimal, orderCount int64) decimal.Decimal {
	if orderCount <= 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(orderCount), 2)
}

// StockStatus classifies a quantity against the low-stock threshold.
func StockStatus(quantity int) enums.StockStatus {
	switch {
	case quantity <= 0:
		return enums.StockStatusOut
	case quantity < LowStockThreshold:
		return enums.StockStatusLow
	default:
		return enums.StockStatusIn
	}
}

// DayStart returns midnight of the passed instant's day.
func DayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// WeekStart returns midnight of the most recent Sunday.
func WeekStart(now time.Time) time.Time {
	day := DayStart(now)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MonthStart returns midnight of the first day of the passed instant's month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// ShopOpenAt reports whether a shop is open at the given instant. The
// schedule's wall-clock times are read in the shop's IANA timezone, and
// the closing minute itself counts as closed.
func ShopOpenAt(week types.WeekSchedule, timezone string, now time.Time) (bool, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return false, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	local := now.In(loc)
	dayName := local.Weekday().String()
	wallClock := local.Format("15:04")

	for _, entry := range week {
		if entry.Day != dayName {
			continue
		}
		if !entry.IsOpen {
			return false, nil
		}
		return entry.OpenTime <= wallClock && wallClock < entry.CloseTime, nil
	}
	return false, nil
}
