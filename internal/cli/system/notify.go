package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/constants"
)

// NotifyCmd delivers the notifications that are due right now, once.
type NotifyCmd struct {
	DryRun bool `help:"Print due notifications instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Notifications.Enabled {
		ctx.Println("Notifications are disabled in config.")
		return nil
	}

	now := ctx.Now()
	if c.DryRun {
		due, err := ctx.Store.GetDueNotifications(now)
		if err != nil {
			return fmt.Errorf("failed to load due notifications: %w", err)
		}
		if len(due) == 0 {
			ctx.Println("No notifications due.")
			return nil
		}
		for _, n := range due {
			ctx.Printf("[DryRun] %s  %s", n.TriggerAt.In(ctx.Config.Location()).Format(constants.DisplayDateFormat+" "+constants.TimeFormat), n.Title)
			if n.Body != "" {
				ctx.Printf(" - %s", n.Body)
			}
			ctx.Println()
		}
		return nil
	}

	runCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	sent, err := ctx.Dispatcher().DeliverDue(runCtx, now)
	if err != nil {
		return err
	}
	ctx.Printf("Sent %d notification(s) via %s.\n", sent, ctx.Sender().Name())
	return nil
}
