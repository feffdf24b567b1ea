// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for knubot.
//
// Configuration is resolved in order of precedence:
//   - Environment variables (KNUBOT_*), optionally loaded from a .env file
//   - ~/.knubot/config.toml
//   - Built-in defaults
//
// The web client this TUI descends from read its backend address from a
// single VITE_BASE_URL variable; KNUBOT_BASE_URL keeps that contract.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete knubot configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend configuration
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Storage configuration (local key-value store)
	Storage StorageConfig `toml:"storage"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging"`
}

// BackendConfig describes how to reach the chatbot backend.
type BackendConfig struct {
	// BaseURL is the root of the backend API, e.g. "https://knubot.example.com"
	BaseURL string `toml:"base_url" env:"KNUBOT_BASE_URL"`
	// TimeoutSecs is the per-request timeout for chat and member calls.
	TimeoutSecs int `toml:"timeout_secs" env:"KNUBOT_TIMEOUT_SECS"`
}

// UIConfig contains terminal UI behavior settings.
type UIConfig struct {
	// TutorialEnabled shows the intro tutorial panel on the empty screen.
	TutorialEnabled bool `toml:"tutorial_enabled" env:"KNUBOT_TUTORIAL"`
	// TooltipSnoozeHours is how long a dismissed first-time hint stays hidden.
	TooltipSnoozeHours int `toml:"tooltip_snooze_hours" env:"KNUBOT_TOOLTIP_SNOOZE_HOURS"`
}

// StorageConfig locates the local store (the browser local-storage analog).
type StorageConfig struct {
	// Path is the sqlite database file; empty means ~/.knubot/local.db
	Path string `toml:"path" env:"KNUBOT_STORE_PATH"`
}

// LoggingConfig controls the file-backed debug log.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level" env:"KNUBOT_LOG_LEVEL"`
	// Path is the log file; empty means ~/.knubot/knubot.log
	Path string `toml:"path" env:"KNUBOT_LOG_PATH"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Backend: BackendConfig{
			BaseURL:     "http://localhost:8080",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			TutorialEnabled:    true,
			TooltipSnoozeHours: 24,
		},
	}
}

// Dir returns the knubot configuration directory (~/.knubot), creating it
// if necessary.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".knubot")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// StorePath resolves the local store location, falling back to the default
// under Dir() when unset.
func (c *Config) StorePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "local.db"), nil
}

// LogPath resolves the log file location.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "knubot.log"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk and the environment.
//
// A missing config file is not an error; missing or malformed values fall
// back to defaults. A malformed file is an error: silently ignoring it
// hides typos from the user.
func Load() (*Config, error) {
	// Best effort; a .env file is a development convenience.
	_ = godotenv.Load()

	cfg := Default()

	dir, err := Dir()
	if err == nil {
		path := filepath.Join(dir, "config.toml")
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, cfg); decErr != nil {
				return nil, fmt.Errorf("parse %s: %w", path, decErr)
			}
		}
	}

	// Environment variables win over the file.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required (set KNUBOT_BASE_URL)")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = Default().Backend.TimeoutSecs
	}
	if c.UI.TooltipSnoozeHours <= 0 {
		c.UI.TooltipSnoozeHours = Default().UI.TooltipSnoozeHours
	}
	return nil
}

// Save writes the configuration to ~/.knubot/config.toml.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "config.toml")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide configuration, or nil before SetGlobal.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCfg
}

// SetGlobal installs the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}
