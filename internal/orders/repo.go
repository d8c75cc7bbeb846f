package orders

import (
	"context"
	"time"

	"github.com/shoplane/shoplane-backend/internal/metrics"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	"github.com/shoplane/shoplane-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads an order with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListResult wraps a page of orders and the cursor for the next page.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor"`
}

// ListByCustomer returns the customer's own orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*ListResult, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_id = ?", customerID)
	return r.listPage(ctx, qb, page)
}

// List returns a scoped page of orders, newest first. Vendor scopes
// join through order items to pick up orders touching their shops.
func (r *Repository) List(ctx context.Context, scope scoping.Scope, page pagination.Params) (*ListResult, error) {
	qb := r.scoped(ctx, scope)
	return r.listPage(ctx, qb, page)
}

func (r *Repository) scoped(ctx context.Context, scope scoping.Scope) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&models.Order{})
	if scope.Kind == scoping.KindShopSet {
		qb = qb.Where(
			"EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.shop_id IN ?)",
			scope.ShopIDs,
		)
	}
	return qb
}

func (r *Repository) listPage(ctx context.Context, qb *gorm.DB, page pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(page.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(page.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		qb = qb.Where("(orders.created_at < ?) OR (orders.created_at = ? AND orders.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
	err = qb.Preload("Items").
		Order("orders.created_at DESC").
		Order("orders.id DESC").
		Limit(limitWithBuffer).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	resultRows := rows
	nextCursor := ""
	if len(rows) > pageSize {
		resultRows = rows[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	orders := make([]OrderDTO, 0, len(resultRows))
	for i := range resultRows {
		orders = append(orders, *FromModel(&resultRows[i]))
	}
	return &ListResult{Orders: orders, NextCursor: nextCursor}, nil
}

// Count returns the number of scoped orders created in [since, until).
func (r *Repository) Count(ctx context.Context, scope scoping.Scope, since, until time.Time) (int64, error) {
	var count int64
	qb := r.scoped(ctx, scope)
	if !since.IsZero() {
		qb = qb.Where("orders.created_at >= ?", since)
	}
	if !until.IsZero() {
		qb = qb.Where("orders.created_at < ?", until)
	}
	err := qb.Count(&count).Error
	return count, err
}

// RevenueRows returns order-level revenue rows for the given window.
// Vendor scopes fan out through the item join; callers dedupe by order
// id when summing.
func (r *Repository) RevenueRows(ctx context.Context, scope scoping.Scope, since, until time.Time) ([]metrics.RevenueRow, error) {
	qb := r.db.WithContext(ctx).
		Table("orders o").
		Select("o.id AS order_id, o.payment_status, o.total_amount")
	if scope.Kind == scoping.KindShopSet {
		qb = qb.Joins("JOIN order_items oi ON oi.order_id = o.id").
			Where("oi.shop_id IN ?", scope.ShopIDs)
	}
	qb = qb.Where("o.payment_status = ?", enums.PaymentStatusPaid)
	if !since.IsZero() {
		qb = qb.Where("o.created_at >= ?", since)
	}
	if !until.IsZero() {
		qb = qb.Where("o.created_at < ?", until)
	}

	var rows []metrics.RevenueRow
	if err := qb.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus overwrites the fulfillment status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// UpdatePaymentStatus overwrites the payment status.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("payment_status", status).Error
}

// SetTracking stores the shipment tracking number.
func (r *Repository) SetTracking(ctx context.Context, id uuid.UUID, trackingNumber string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("tracking_number", trackingNumber).Error
}
