package system

import (
	"context"
	"time"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/notifier"
)

// ReconcileCmd aligns scheduled notifications with the reminder list.
type ReconcileCmd struct {
	Timeout time.Duration `help:"How long to wait for the commands to finish." default:"30s"`
}

func (c *ReconcileCmd) Run(ctx *cli.Context) error {
	if ctx.Queue == nil {
		ctx.Println("Notifications are disabled in config.")
		return nil
	}

	runCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	tasks, err := ctx.Manager.Reconcile(runCtx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		ctx.Println("Notifications are up to date.")
		return nil
	}

	var scheduled, cancelled, failed int
	for _, task := range tasks {
		if err := task.Wait(runCtx); err != nil {
			failed++
			continue
		}
		switch task.Command.Kind {
		case notifier.KindSchedule:
			scheduled++
		case notifier.KindCancel:
			cancelled++
		}
	}
	ctx.Printf("Scheduled %d, cancelled %d, failed %d.\n", scheduled, cancelled, failed)
	return nil
}
