package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/keyring"
	"github.com/julianstephens/fitlife/internal/notifier"
	"github.com/julianstephens/fitlife/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var doctorChecks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Reminder data", needsDB: true, run: checkReminders},
	{name: "Scheduled notifications", needsDB: true, warnOnly: true, run: checkNotifications},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", warnOnly: true, run: checkKeyring},
	{name: "Tray app", warnOnly: true, run: checkTrayApp},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	for i, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d, run 'fitlife migrate'", current, latest)
	}
	return nil
}

func checkReminders(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}
	var bad int
	for i := range items {
		if err := items[i].Validate(); err != nil {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d reminders are invalid", bad, len(items))
	}
	return nil
}

func checkNotifications(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}
	pending, err := ctx.Store.GetNotifications()
	if err != nil {
		return err
	}
	desired := notifier.Desired(items, ctx.Config.Location(), ctx.Now(), nil)
	if cmds := notifier.Plan(desired, pending); len(cmds) > 0 {
		return fmt.Errorf("%d notification change(s) pending, run 'fitlife reconcile'", len(cmds))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.NowInTimezone(ctx.Config.Timezone); err != nil {
		return err
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; PostgreSQL credentials must come from the environment or .pgpass")
	}
	return nil
}

func checkTrayApp(ctx *cli.Context) error {
	if !ctx.Config.Notifications.Enabled || ctx.Config.Notifications.Backend != constants.NotifyBackendTray {
		return nil
	}
	return notifier.CheckTray()
}
