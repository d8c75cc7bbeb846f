package notifications

import (
	"context"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/logger"
	"github.com/shoplane/shoplane-backend/pkg/metrics"
	"github.com/google/uuid"
)

// Event describes a notification to deliver to a single user.
type Event struct {
	Kind    string
	UserID  uuid.UUID
	Title   string
	Message string
}

// Dispatcher persists notifications on a best-effort basis. Failures are
// logged and counted but never surfaced to the caller, so a failed
// notification cannot block the operation that triggered it.
type Dispatcher struct {
	repo Repository
	logg *logger.Logger
	mtx  *metrics.NotificationMetrics
}

// NewDispatcher wires the dispatcher dependencies. Metrics may be nil.
func NewDispatcher(repo Repository, logg *logger.Logger, mtx *metrics.NotificationMetrics) *Dispatcher {
	return &Dispatcher{repo: repo, logg: logg, mtx: mtx}
}

// Notify stores the event for its recipient. It never returns an error.
func (d *Dispatcher) Notify(ctx context.Context, event Event) {
	if d == nil || d.repo == nil {
		return
	}
	if event.UserID == uuid.Nil {
		d.mtx.IncDispatched(event.Kind, "skipped")
		return
	}

	notification := models.Notification{
		UserID:  event.UserID,
		Title:   event.Title,
		Message: event.Message,
	}
	if err := d.repo.Create(ctx, &notification); err != nil {
		if d.logg != nil {
			ctx = d.logg.WithField(ctx, "event", event.Kind)
			d.logg.Error(ctx, "notification dispatch failed", err)
		}
		d.mtx.IncDispatched(event.Kind, "error")
		return
	}
	d.mtx.IncDispatched(event.Kind, "ok")
}

// NotifyAll stores the event for every recipient.
func (d *Dispatcher) NotifyAll(ctx context.Context, userIDs []uuid.UUID, event Event) {
	for _, id := range userIDs {
		event.UserID = id
		d.Notify(ctx, event)
	}
}
