package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/fitlife/internal/constants"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for a missing file", cfg.Path)
	}
	if cfg.UserID != constants.DefaultUserID {
		t.Errorf("UserID = %q", cfg.UserID)
	}
	if strings.HasPrefix(cfg.Database, "~") {
		t.Errorf("Database %q was not expanded", cfg.Database)
	}
	if !cfg.Notifications.Enabled || cfg.Notifications.Backend != constants.NotifyBackendTray {
		t.Errorf("Notifications = %+v", cfg.Notifications)
	}
	if cfg.Swipe.DeleteFraction != constants.DefaultSwipeDeleteFraction {
		t.Errorf("DeleteFraction = %v", cfg.Swipe.DeleteFraction)
	}
	if cfg.Daemon.Schedule != constants.DefaultDaemonSchedule {
		t.Errorf("Schedule = %q", cfg.Daemon.Schedule)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
user_id: athlete-42
database: postgres://coach@db.internal:5432/fitlife
timezone: UTC
notifications:
  backend: log
swipe:
  delete_fraction: 0.8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.UserID != "athlete-42" {
		t.Errorf("UserID = %q", cfg.UserID)
	}
	if cfg.Database != "postgres://coach@db.internal:5432/fitlife" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Notifications.Backend != constants.NotifyBackendLog {
		t.Errorf("Backend = %q", cfg.Notifications.Backend)
	}
	if !cfg.Notifications.Enabled {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Swipe.DeleteFraction != 0.8 || cfg.Swipe.RevealFraction != constants.DefaultSwipeRevealFraction {
		t.Errorf("Swipe = %+v", cfg.Swipe)
	}
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location() = %v", cfg.Location())
	}
	if cfg.Dir() != filepath.Dir(path) {
		t.Errorf("Dir() = %q", cfg.Dir())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "user_id: from-file\n")
	t.Setenv("FITLIFE_USER_ID", "from-env")
	t.Setenv("FITLIFE_NOTIFICATIONS__DURATION_MS", "9000")
	t.Setenv("FITLIFE_DAEMON__SCHEDULE", "*/5 * * * *")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UserID != "from-env" {
		t.Errorf("UserID = %q, want from-env", cfg.UserID)
	}
	if cfg.Notifications.DurationMs != 9000 {
		t.Errorf("DurationMs = %d, want 9000", cfg.Notifications.DurationMs)
	}
	if cfg.Daemon.Schedule != "*/5 * * * *" {
		t.Errorf("Schedule = %q", cfg.Daemon.Schedule)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"backend", "notifications:\n  backend: pigeon\n", "notification backend"},
		{"timezone", "timezone: Mars/Base\n", "timezone"},
		{"schedule", "daemon:\n  schedule: sometimes\n", "daemon.schedule"},
		{"swipe", "swipe:\n  reveal_fraction: 0.9\n  delete_fraction: 0.5\n", "swipe"},
		{"theme", "theme: neon\n", "theme"},
		{"user", "user_id: \"  \"\n", "user_id"},
		{"yaml", "user_id: [\n", "config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if err := WriteDefault(path, false); err == nil {
		t.Error("WriteDefault() should refuse to overwrite")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("WriteDefault(force) error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of written defaults error = %v", err)
	}
	if cfg.Path != path || cfg.Theme != "charm" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := map[string]string{
		"":              "",
		"~":             home,
		"~/fitlife.db":  filepath.Join(home, "fitlife.db"),
		"/tmp/x.db":     "/tmp/x.db",
		"relative/x.db": "relative/x.db",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}
