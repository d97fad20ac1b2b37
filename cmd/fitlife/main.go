package main

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/cli/reminder"
	"github.com/julianstephens/fitlife/internal/cli/system"
	"github.com/julianstephens/fitlife/internal/config"
	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/errors"
	"github.com/julianstephens/fitlife/internal/form"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/reminders"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_file}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd      `cmd:"" help:"Initialize fitlife storage."`
	Migrate   system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Notify    system.NotifyCmd    `cmd:"" help:"Deliver due notifications once."`
	Reconcile system.ReconcileCmd `cmd:"" help:"Align scheduled notifications with the reminder list."`
	Daemon    system.DaemonCmd    `cmd:"" help:"Deliver notifications on a schedule and serve health and metrics."`
	Reminder  struct {
		Add    reminder.AddCmd    `cmd:"" help:"Add a reminder."`
		Edit   reminder.EditCmd   `cmd:"" help:"Edit a reminder."`
		Delete reminder.DeleteCmd `cmd:"" help:"Delete a reminder."`
		List   reminder.ListCmd   `cmd:"" help:"List reminders." default:"1"`
		Show   reminder.ShowCmd   `cmd:"" help:"Show one reminder."`
	} `cmd:"" help:"Manage reminders."`
	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Create a backup of the sqlite database." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
	} `cmd:"" help:"Manage sqlite database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the database connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from."`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

func init() {
	errors.RegisterUserError(
		reminders.ErrBlankTitle,
		reminders.ErrNotFound,
		reminders.ErrIndexOutOfRange,
		form.ErrPastDate,
	)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Reminders for your training plan, with local notifications."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	command := strings.Fields(ctx.Command())[0]
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.Dir(),
		Quiet:     command == "tui",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", cfg.Path)

	store, err := cli.OpenStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(cfg, store)
	appCtx.ConfigFile = CLI.Config

	// init, keyring and doctor manage storage themselves.
	switch command {
	case "init", "keyring", "doctor":
	default:
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		if command != "migrate" && command != "backup" {
			if err := appCtx.Start(context.Background()); err != nil {
				errors.Fatal(err)
			}
		}
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	errors.Fatal(err)
}
