package notifier

import (
	"context"
	"time"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/models"
)

// LogSink delivers notifications by writing them to the log. It is the
// backend for headless machines without the tray app.
type LogSink struct{}

func (LogSink) Name() string { return constants.NotifyBackendLog }

func (LogSink) Send(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Info("Reminder due",
		"id", n.ID,
		"title", n.Title,
		"body", n.Body,
		"trigger_at", n.TriggerAt.Format(time.RFC3339),
	)
	return nil
}
