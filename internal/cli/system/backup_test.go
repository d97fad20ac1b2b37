package system

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/fitlife/internal/backup"
	"github.com/julianstephens/fitlife/internal/storage/sqlite"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupStartedContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Backup created: fitlife-") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("output = %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupStartedContext(t)
	if _, err := ctx.Manager.Add(reminderFixture("Stretch")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := ctx.Manager.Add(reminderFixture("Run")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	orig := confirmRestore
	t.Cleanup(func() { confirmRestore = orig })
	confirmRestore = func(string) (bool, error) { return true, nil }

	if err := (&BackupRestoreCmd{File: filepath.Base(snapshot)}).Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Database restored") {
		t.Errorf("output = %q", out.String())
	}

	store := sqlite.NewStore(ctx.Store.GetConfigPath(), ctx.Config.UserID)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer store.Close()
	items, err := store.GetAllReminders()
	if err != nil {
		t.Fatalf("GetAllReminders() error = %v", err)
	}
	if len(items) != 1 || items[0].Title != "Stretch" {
		t.Errorf("restored reminders = %+v, want only Stretch", items)
	}
}

func TestBackupRestore_Declined(t *testing.T) {
	ctx, out := setupStartedContext(t)
	snapshot, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	orig := confirmRestore
	t.Cleanup(func() { confirmRestore = orig })
	confirmRestore = func(string) (bool, error) { return false, nil }

	if err := (&BackupRestoreCmd{File: snapshot}).Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestBackupRestore_NotFound(t *testing.T) {
	ctx, _ := setupStartedContext(t)
	if err := (&BackupRestoreCmd{File: "fitlife-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}
