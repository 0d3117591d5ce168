// Copyright (c) 2025 Goldturn Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for goldturn.
//
// Configuration sources, in order of precedence:
//   - GOLDTURN_* environment variables
//   - ~/.goldturn/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/goldturn/goldturn-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete goldturn configuration.
type Config struct {
	// Backend configuration
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// BackendConfig describes the generation backend to talk to.
type BackendConfig struct {
	// URL is the backend base URL.
	URL string `toml:"url"`
	// TimeoutSecs bounds non-streaming requests (edit saves). Generation
	// requests stream without a deadline.
	TimeoutSecs int `toml:"timeout_secs"`
	// TurnHeader is the response header carrying the turn identifier.
	TurnHeader string `toml:"turn_header"`
}

// UIConfig contains presentation toggles.
type UIConfig struct {
	// Markdown renders ready bot replies through the markdown renderer.
	Markdown bool `toml:"markdown"`
	// Timestamps shows a timestamp next to each message.
	Timestamps bool `toml:"timestamps"`
	// ExportDir is where /export writes transcripts (empty = ~/.goldturn/exports).
	ExportDir string `toml:"export_dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:         "http://127.0.0.1:5000",
			TimeoutSecs: 30,
			TurnHeader:  "X-Turn-Id",
		},
		UI: UIConfig{
			Markdown:   true,
			Timestamps: false,
		},
	}
}

// Timeout returns the backend timeout as a duration.
func (b *BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// ConfigDir returns the goldturn configuration directory (~/.goldturn).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".goldturn"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration from the default path, falling back to
// defaults when no file exists, then applies environment overrides.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path. A missing file is
// not an error: defaults apply.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays GOLDTURN_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GOLDTURN_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("GOLDTURN_TURN_HEADER"); v != "" {
		c.Backend.TurnHeader = v
	}
	if v := os.Getenv("GOLDTURN_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
}

// fillDefaults replaces zero values with the built-in defaults.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Backend.URL == "" {
		c.Backend.URL = def.Backend.URL
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
	if c.Backend.TurnHeader == "" {
		c.Backend.TurnHeader = def.Backend.TurnHeader
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", c.Backend.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("backend url must use http or https")
	}
	if u.Host == "" {
		return errors.New("backend url is missing a host")
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path atomically.
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path atomically.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}
