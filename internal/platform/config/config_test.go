package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"focusflow/internal/platform/config"
)

func TestNewUsesBuiltinDefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SessionsPath != filepath.Join(dir, "sessions.json") {
		t.Fatalf("unexpected sessions path: %s", cfg.SessionsPath)
	}
	if cfg.ActivePath != filepath.Join(dir, "active.json") {
		t.Fatalf("unexpected active path: %s", cfg.ActivePath)
	}
	if cfg.DBPath != filepath.Join(dir, "focusflow.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.Defaults.DurationMinutes != 25 || cfg.Defaults.BreakMinutes != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if len(cfg.DistractionTypes) != 4 || cfg.DistractionTypes[0] != "phone" {
		t.Fatalf("unexpected distraction types: %v", cfg.DistractionTypes)
	}
}

func TestNewMergesConfigFileOverDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	yaml := `
defaults:
  duration_minutes: 50
  break_minutes: 0
distraction_types:
  - email
  - chat
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Defaults.DurationMinutes != 50 {
		t.Fatalf("duration override lost: %+v", cfg.Defaults)
	}
	// An explicit zero break must survive the merge.
	if cfg.Defaults.BreakMinutes != 0 {
		t.Fatalf("explicit zero break lost: %+v", cfg.Defaults)
	}
	if len(cfg.DistractionTypes) != 2 || cfg.DistractionTypes[1] != "chat" {
		t.Fatalf("distraction types override lost: %v", cfg.DistractionTypes)
	}
}

func TestNewRejectsMalformedConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("defaults: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("malformed config must fail")
	}
}
