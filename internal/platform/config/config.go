package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults pre-fill the session creation form.
type Defaults struct {
	DurationMinutes int `yaml:"duration_minutes"`
	BreakMinutes    int `yaml:"break_minutes"`
}

type Config struct {
	DataDir          string
	SessionsPath     string
	ActivePath       string
	DBPath           string
	Defaults         Defaults
	DistractionTypes []string
}

// fileConfig is the shape of the optional config.yaml in the data dir.
// BreakMinutes is a pointer so an explicit zero survives the merge.
type fileConfig struct {
	Defaults struct {
		DurationMinutes int  `yaml:"duration_minutes"`
		BreakMinutes    *int `yaml:"break_minutes"`
	} `yaml:"defaults"`
	DistractionTypes []string `yaml:"distraction_types"`
}

// New resolves the data directory and merges config.yaml over the built-in
// defaults. An empty dataDir falls back to ~/.focusflow. A missing config
// file is fine; a malformed one is an error.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".focusflow")
	}

	cfg := Config{
		DataDir:          dataDir,
		SessionsPath:     filepath.Join(dataDir, "sessions.json"),
		ActivePath:       filepath.Join(dataDir, "active.json"),
		DBPath:           filepath.Join(dataDir, "focusflow.db"),
		Defaults:         Defaults{DurationMinutes: 25, BreakMinutes: 5},
		DistractionTypes: []string{"phone", "social", "noise", "other"},
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if fc.Defaults.DurationMinutes > 0 {
		cfg.Defaults.DurationMinutes = fc.Defaults.DurationMinutes
	}
	if fc.Defaults.BreakMinutes != nil && *fc.Defaults.BreakMinutes >= 0 {
		cfg.Defaults.BreakMinutes = *fc.Defaults.BreakMinutes
	}
	if len(fc.DistractionTypes) > 0 {
		cfg.DistractionTypes = fc.DistractionTypes
	}
	return cfg, nil
}
