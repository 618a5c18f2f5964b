// Package config holds the app-level configuration file. This is distinct
// from the per-user view state (internal/viewstate): config describes how
// the process runs, view state remembers what the user last looked at.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the optional HTTP listen address for the preview server.
	// Empty disables the server.
	Listen string `yaml:"listen"`

	// SettingsPath overrides where the view-state file lives. Empty means
	// the default location in the user's home directory.
	SettingsPath string `yaml:"settings_path"`

	// NotifyHolidays enables a desktop notification at midnight when the
	// new day carries an enabled holiday.
	NotifyHolidays bool `yaml:"notify_holidays"`

	// DayChangeCron overrides the schedule for the day-change refresh.
	DayChangeCron string `yaml:"day_change_cron"`

	// SnapshotWidth / SnapshotHeight are the viewport dimensions for PNG
	// snapshot capture.
	SnapshotWidth  int `yaml:"snapshot_width"`
	SnapshotHeight int `yaml:"snapshot_height"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:         "",
		NotifyHolidays: true,
		DayChangeCron:  "0 0 * * *",
		SnapshotWidth:  900,
		SnapshotHeight: 700,
	}
}

// Normalize fills in missing/zero values so partially-filled configs from
// older versions still behave.
func (c *Config) Normalize() {
	if c.DayChangeCron == "" {
		c.DayChangeCron = "0 0 * * *"
	}
	if c.SnapshotWidth <= 0 {
		c.SnapshotWidth = 900
	}
	if c.SnapshotHeight <= 0 {
		c.SnapshotHeight = 700
	}
}

// DefaultPath returns the config location under the user's config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mini-calendar.yaml"
	}
	return filepath.Join(dir, "mini-calendar", "config.yaml")
}

// Load loads configuration from the given YAML path. A missing file is
// created with defaults on first run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".mini-calendar-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
