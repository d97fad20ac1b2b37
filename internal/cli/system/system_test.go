package system

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/config"
	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/storage/sqlite"
)

// setupTestContext returns a context over an uninitialized sqlite database.
func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	dir := t.TempDir()
	cfg.Database = filepath.Join(dir, "test.db")
	cfg.Notifications.Backend = constants.NotifyBackendLog

	ctx := cli.NewContext(cfg, sqlite.NewStore(cfg.Database, cfg.UserID))
	var out bytes.Buffer
	ctx.Out = &out
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close context: %v", err)
		}
	})
	return ctx, &out, cfg.Database
}

// setupStartedContext also initializes storage and starts the queue.
func setupStartedContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, out, _ := setupTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := ctx.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return ctx, out
}
