package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("first-run load: %v", err)
	}
	if cfg.DayChangeCron != "0 0 * * *" {
		t.Errorf("cron default = %q", cfg.DayChangeCron)
	}
	if !cfg.NotifyHolidays {
		t.Error("notifications should default on")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestNormalizeFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	blob := "listen: 127.0.0.1:9090\nsnapshot_width: 0\n"
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != "127.0.0.1:9090" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if cfg.SnapshotWidth != 900 || cfg.SnapshotHeight != 700 {
		t.Errorf("snapshot dims = %dx%d", cfg.SnapshotWidth, cfg.SnapshotHeight)
	}
	if cfg.DayChangeCron == "" {
		t.Error("cron left empty")
	}
}

func TestSaveRejectsNil(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "c.yaml"), nil); err == nil {
		t.Error("nil config saved without error")
	}
	if err := Save("", DefaultConfig()); err == nil {
		t.Error("empty path saved without error")
	}
}
