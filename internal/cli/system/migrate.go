package system

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/fitlife/internal/backup"
	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/storage/sqlite"
)

// migrator is implemented by both storage backends.
type migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

type MigrateCmd struct {
	NoBackup bool `help:"Skip the sqlite backup taken before applying migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	if _, ok := ctx.Store.(*sqlite.Store); ok && !c.NoBackup {
		current, latest, err := m.SchemaVersion()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		if current < latest {
			path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
			if err != nil {
				return fmt.Errorf("failed to back up database before migrating: %w", err)
			}
			ctx.Printf("Backed up database to: %s\n", filepath.Base(path))
		}
	}

	count, err := m.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
