package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/config"
	"github.com/julianstephens/fitlife/internal/storage/sqlite"
)

type InitCmd struct {
	Force       bool `help:"Force reset by deleting an existing sqlite database before initialization."`
	WriteConfig bool `help:"Write a default config file when none exists." default:"true" negatable:""`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.WriteConfig && ctx.ConfigFile != "" {
		path := config.ExpandPath(ctx.ConfigFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.WriteDefault(path, false); err != nil {
				return err
			}
			ctx.Printf("Wrote default config to: %s\n", path)
		}
	}

	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force only supports sqlite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized fitlife storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
