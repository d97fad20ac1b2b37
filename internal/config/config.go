// Package config loads fitlife settings from built-in defaults, an optional
// YAML file, and FITLIFE_ environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/storage/postgres"
	"github.com/julianstephens/fitlife/internal/swipe"
	"github.com/julianstephens/fitlife/internal/utils"
)

// Themes are the form themes the TUI knows how to build.
var Themes = []string{"charm", "dracula", "catppuccin", "base16", "base"}

type Config struct {
	UserID        string              `koanf:"user_id"`
	Database      string              `koanf:"database"`
	Timezone      string              `koanf:"timezone"`
	Debug         bool                `koanf:"debug"`
	Theme         string              `koanf:"theme"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Daemon        DaemonConfig        `koanf:"daemon"`
	Swipe         SwipeConfig         `koanf:"swipe"`

	// Path is the file the config was read from, empty when none existed.
	Path string `koanf:"-"`
}

type NotificationsConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Backend    string `koanf:"backend"`
	DurationMs int    `koanf:"duration_ms"`
}

type DaemonConfig struct {
	Schedule    string `koanf:"schedule"`
	MetricsAddr string `koanf:"metrics_addr"`
}

type SwipeConfig struct {
	RevealFraction float64 `koanf:"reveal_fraction"`
	DeleteFraction float64 `koanf:"delete_fraction"`
}

// envKey maps FITLIFE_NOTIFICATIONS__DURATION_MS to notifications.duration_ms.
// A double underscore separates sections so keys can keep single underscores.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, constants.EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	var loadedFrom string
	if configPath != "" {
		configPath = ExpandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
			loadedFrom = configPath
		}
	}

	if err := k.Load(env.Provider(constants.EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Path = loadedFrom

	if !postgres.IsConnString(cfg.Database) {
		cfg.Database = ExpandPath(cfg.Database)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database must not be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", c.Timezone)
	}

	switch c.Notifications.Backend {
	case constants.NotifyBackendTray, constants.NotifyBackendLog:
	default:
		return fmt.Errorf("unknown notification backend: %s (supported: %s, %s)",
			c.Notifications.Backend, constants.NotifyBackendTray, constants.NotifyBackendLog)
	}
	if c.Notifications.DurationMs <= 0 {
		return fmt.Errorf("notifications.duration_ms must be positive")
	}

	if _, err := cron.ParseStandard(c.Daemon.Schedule); err != nil {
		return fmt.Errorf("invalid daemon.schedule %q: %w", c.Daemon.Schedule, err)
	}

	if err := c.SwipeConfig().Validate(); err != nil {
		return err
	}

	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("unknown theme: %s (supported: %s)", c.Theme, strings.Join(Themes, ", "))
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) SwipeConfig() swipe.Config {
	return swipe.Config{
		RevealFraction: c.Swipe.RevealFraction,
		DeleteFraction: c.Swipe.DeleteFraction,
	}
}

// Dir is the directory that holds the config file, logs and the default
// sqlite database.
func (c *Config) Dir() string {
	if c.Path != "" {
		return filepath.Dir(c.Path)
	}
	return ExpandPath(constants.DefaultConfigDir)
}

// WriteDefault writes the built-in defaults to path as YAML. An existing file
// is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	b, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
