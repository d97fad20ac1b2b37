package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/storage"
)

// Dispatcher hands due notifications to a Sender and advances or removes
// them afterwards. Failed deliveries stay due and are retried on the next run.
type Dispatcher struct {
	store   storage.Provider
	sender  Sender
	loc     *time.Location
	metrics *Metrics
}

func NewDispatcher(store storage.Provider, sender Sender, loc *time.Location, metrics *Metrics) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Dispatcher{store: store, sender: sender, loc: loc, metrics: metrics}
}

// DeliverDue sends every notification due at now and returns how many were sent.
func (d *Dispatcher) DeliverDue(ctx context.Context, now time.Time) (int, error) {
	due, err := d.store.GetDueNotifications(now)
	if err != nil {
		return 0, fmt.Errorf("failed to load due notifications: %w", err)
	}

	sent := 0
	for _, n := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := d.sender.Send(ctx, n); err != nil {
			d.metrics.Deliveries.WithLabelValues(d.sender.Name(), "error").Inc()
			logger.Warn("Notification delivery failed", "id", n.ID, "backend", d.sender.Name(), "error", err)
			continue
		}
		d.metrics.Deliveries.WithLabelValues(d.sender.Name(), "ok").Inc()
		sent++

		// Repeat rules are evaluated in the user's zone so weekday and
		// wall-clock time survive the UTC round trip through storage.
		n.Anchor = n.Anchor.In(d.loc)
		n.TriggerAt = n.TriggerAt.In(d.loc)
		after := now
		if n.TriggerAt.After(after) {
			after = n.TriggerAt
		}
		next, err := n.NextAfter(after)
		if err != nil {
			logger.Warn("Failed to compute next occurrence", "id", n.ID, "error", err)
			next = time.Time{}
		}

		if err := d.store.MarkNotificationSent(n.ID, now, next); err != nil {
			logger.Error("Failed to record notification delivery", "id", n.ID, "error", err)
		}
	}
	return sent, nil
}
