// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"UNIASSIST_API_URL", "UNIASSIST_SIMULATED", "UNIASSIST_LOG_LEVEL", "UNIASSIST_THEME"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 1500*time.Millisecond, cfg.SimulatedDelay())
	assert.Equal(t, time.Second, cfg.FallbackDelay())
	assert.Equal(t, 10*time.Millisecond, cfg.RevealInterval())
	assert.False(t, cfg.Session.StartSimulated)
	assert.True(t, cfg.Reveal.Enabled)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[backend]
base_url = "https://assist.example.edu"
max_retries = 2

[session]
start_simulated = true
simulated_delay_ms = 0

[ui]
theme = "light"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://assist.example.edu", cfg.Backend.BaseURL)
	assert.Equal(t, 2, cfg.Backend.MaxRetries)
	assert.Equal(t, 30, cfg.Backend.TimeoutSecs, "unset keys keep defaults")
	assert.True(t, cfg.Session.StartSimulated)
	assert.Equal(t, 0, cfg.Session.SimulatedDelayMs, "explicit zero is kept")
	assert.Equal(t, 1000, cfg.Session.FallbackDelayMs)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[backend]
base_url = "https://assist.example.edu"
`)
	t.Setenv("UNIASSIST_API_URL", "http://127.0.0.1:9000")
	t.Setenv("UNIASSIST_SIMULATED", "true")
	t.Setenv("UNIASSIST_LOG_LEVEL", "debug")
	t.Setenv("UNIASSIST_THEME", "dark")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Backend.BaseURL)
	assert.True(t, cfg.Session.StartSimulated)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `[backend`, "failed to decode"},
		{"unknown key", "[backend]\nbase_ur = \"x\"\n", "unknown config keys"},
		{"invalid value", "[backend]\nbase_url = \"ftp://x\"\n", "backend.base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"bad url scheme", func(c *Config) { c.Backend.BaseURL = "file:///etc/passwd" }, "backend.base_url"},
		{"empty url", func(c *Config) { c.Backend.BaseURL = "" }, "backend.base_url"},
		{"negative timeout", func(c *Config) { c.Backend.TimeoutSecs = -1 }, "backend.timeout_secs"},
		{"too many retries", func(c *Config) { c.Backend.MaxRetries = 11 }, "backend.max_retries"},
		{"negative rate", func(c *Config) { c.Backend.RatePerSec = -2 }, "backend.rate_per_sec"},
		{"negative delay", func(c *Config) { c.Session.SimulatedDelayMs = -5 }, "session.simulated_delay_ms"},
		{"huge fallback", func(c *Config) { c.Session.FallbackDelayMs = 120000 }, "session.fallback_delay_ms"},
		{"zero interval", func(c *Config) { c.Reveal.IntervalMs = 0 }, "reveal.interval_ms"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty level", func(c *Config) { c.Log.Level = "" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.Reveal.IntervalMs = 0

	err := cfg.Validate()
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "; ")
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Backend.BaseURL = "https://assist.example.edu"
	cfg.Session.StartSimulated = true
	cfg.UI.Markdown = false
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "uniassist.log", filepath.Base(cfg.LogPath()))
	assert.Equal(t, "telemetry.db", filepath.Base(cfg.TelemetryPath()))

	cfg.Log.File = "/tmp/custom.log"
	cfg.Telemetry.Path = "/tmp/custom.db"
	assert.Equal(t, "/tmp/custom.log", cfg.LogPath())
	assert.Equal(t, "/tmp/custom.db", cfg.TelemetryPath())
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.UI.Theme = "dark"
	assert.Equal(t, "auto", cfg.UI.Theme)
}
