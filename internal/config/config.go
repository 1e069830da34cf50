// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/jeranaias/uniassist-tui/internal/offline"
	"github.com/jeranaias/uniassist-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete uniassist configuration.
type Config struct {
	Version string `toml:"version"`

	Backend   BackendConfig   `toml:"backend"`
	Session   SessionConfig   `toml:"session"`
	Reveal    RevealConfig    `toml:"reveal"`
	UI        UIConfig        `toml:"ui"`
	Log       LogConfig       `toml:"log"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// BackendConfig configures the assistant API client.
type BackendConfig struct {
	// BaseURL is the API root; requests go to {BaseURL}/chat.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds one request. A timeout counts as a failure.
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxRetries for 5xx, 429 and connection errors within one request.
	MaxRetries int `toml:"max_retries"`
	// RatePerSec limits outgoing requests. 0 disables the limit.
	RatePerSec float64 `toml:"rate_per_sec"`
}

// SessionConfig configures the conversation controller.
type SessionConfig struct {
	// StartSimulated starts in demo mode without trying the backend.
	StartSimulated bool `toml:"start_simulated"`
	// SimulatedDelayMs is waited before each demo-mode reply.
	SimulatedDelayMs int `toml:"simulated_delay_ms"`
	// FallbackDelayMs is waited after a failure before the fallback reply.
	FallbackDelayMs int `toml:"fallback_delay_ms"`
}

// RevealConfig configures the typewriter effect.
type RevealConfig struct {
	Enabled    bool `toml:"enabled"`
	IntervalMs int  `toml:"interval_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`
	// Markdown renders settled bot replies with glamour.
	Markdown bool `toml:"markdown"`
	// ShowToolCalls shows the tool execution log under bot replies.
	ShowToolCalls bool `toml:"show_tool_calls"`
}

// LogConfig configures the log file.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string `toml:"level"`
	// File defaults to ~/.uniassist/logs/uniassist.log.
	File string `toml:"file"`
}

// TelemetryConfig configures the local round-trip log.
type TelemetryConfig struct {
	Enabled bool `toml:"enabled"`
	// Path defaults to ~/.uniassist/telemetry.db.
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultBaseURL is the backend used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Backend: BackendConfig{
			BaseURL:     DefaultBaseURL,
			TimeoutSecs: 30,
		},
		Session: SessionConfig{
			SimulatedDelayMs: 1500,
			FallbackDelayMs:  1000,
		},
		Reveal: RevealConfig{
			Enabled:    true,
			IntervalMs: 10,
		},
		UI: UIConfig{
			Theme:         "auto",
			Markdown:      true,
			ShowToolCalls: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// DURATION HELPERS
// =============================================================================

// RequestTimeout returns the backend timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// SimulatedDelay returns the demo-mode delay.
func (c *Config) SimulatedDelay() time.Duration {
	return time.Duration(c.Session.SimulatedDelayMs) * time.Millisecond
}

// FallbackDelay returns the post-failure delay.
func (c *Config) FallbackDelay() time.Duration {
	return time.Duration(c.Session.FallbackDelayMs) * time.Millisecond
}

// RevealInterval returns the typewriter tick interval.
func (c *Config) RevealInterval() time.Duration {
	return time.Duration(c.Reveal.IntervalMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the uniassist configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".uniassist"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the configured log file, or the default one.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "logs", "uniassist.log")
}

// TelemetryPath returns the configured telemetry database, or the default.
func (c *Config) TelemetryPath() string {
	if c.Telemetry.Path != "" {
		return c.Telemetry.Path
	}
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "telemetry.db")
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config at path, or the default path when path is empty.
// A missing file is not an error; defaults are used. Environment overrides
// are applied before validation.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// decodeFile decodes path over cfg. Keys absent from the file keep their
// current values, so explicit zeroes are preserved.
func decodeFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Encode returns the TOML form of c.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# uniassist configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes c to path atomically with 0600 permissions.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if err := offline.ValidateBaseURL(c.Backend.BaseURL); err != nil {
		add("backend.base_url", "%v", err)
	}
	if c.Backend.TimeoutSecs < 0 || c.Backend.TimeoutSecs > 600 {
		add("backend.timeout_secs", "must be between 0 and 600, got %d", c.Backend.TimeoutSecs)
	}
	if c.Backend.MaxRetries < 0 || c.Backend.MaxRetries > 10 {
		add("backend.max_retries", "must be between 0 and 10, got %d", c.Backend.MaxRetries)
	}
	if c.Backend.RatePerSec < 0 {
		add("backend.rate_per_sec", "must not be negative, got %g", c.Backend.RatePerSec)
	}

	if c.Session.SimulatedDelayMs < 0 || c.Session.SimulatedDelayMs > 60000 {
		add("session.simulated_delay_ms", "must be between 0 and 60000, got %d", c.Session.SimulatedDelayMs)
	}
	if c.Session.FallbackDelayMs < 0 || c.Session.FallbackDelayMs > 60000 {
		add("session.fallback_delay_ms", "must be between 0 and 60000, got %d", c.Session.FallbackDelayMs)
	}

	if c.Reveal.IntervalMs < 1 || c.Reveal.IntervalMs > 1000 {
		add("reveal.interval_ms", "must be between 1 and 1000, got %d", c.Reveal.IntervalMs)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		add("ui.theme", "invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil || c.Log.Level == "" {
		add("log.level", "invalid level '%s'", c.Log.Level)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - UNIASSIST_API_URL: overrides backend.base_url
//   - UNIASSIST_SIMULATED: overrides session.start_simulated
//   - UNIASSIST_LOG_LEVEL: overrides log.level
//   - UNIASSIST_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if url := os.Getenv("UNIASSIST_API_URL"); url != "" {
		c.Backend.BaseURL = url
	}
	if sim := os.Getenv("UNIASSIST_SIMULATED"); sim != "" {
		c.Session.StartSimulated = sim == "1" || strings.EqualFold(sim, "true")
	}
	if level := os.Getenv("UNIASSIST_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if theme := os.Getenv("UNIASSIST_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
