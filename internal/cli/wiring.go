// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/jeranaias/uniassist-tui/internal/backend"
	"github.com/jeranaias/uniassist-tui/internal/dispatch"
	"github.com/jeranaias/uniassist-tui/internal/telemetry"
	"github.com/jeranaias/uniassist-tui/internal/ui/styles"
)

// newBackend builds the HTTP client from config. It returns a nil
// interface when the client cannot be built, so the session falls back to
// simulated replies on first use.
func (a *app) newBackend() dispatch.Backend {
	c, err := backend.NewClient(a.cfg.Backend.BaseURL)
	if err != nil {
		a.logger.Warn().Err(err).Str("base_url", a.cfg.Backend.BaseURL).Msg("backend disabled")
		return nil
	}
	return c.
		WithTimeout(a.cfg.RequestTimeout()).
		WithMaxRetries(a.cfg.Backend.MaxRetries).
		WithRateLimit(a.cfg.Backend.RatePerSec).
		WithLogger(a.logger)
}

// openTelemetry opens the round-trip store, or returns nil when telemetry
// is disabled or the store cannot be opened.
func (a *app) openTelemetry() *telemetry.Store {
	if !a.cfg.Telemetry.Enabled {
		return nil
	}
	store, err := telemetry.Open(a.cfg.TelemetryPath())
	if err != nil {
		a.logger.Warn().Err(err).Msg("telemetry disabled")
		return nil
	}
	return store
}

// newDispatcher creates the session controller. store may be nil.
func (a *app) newDispatcher(store *telemetry.Store) *dispatch.Dispatcher {
	opts := dispatch.Options{
		SimulatedDelay: a.cfg.SimulatedDelay(),
		FallbackDelay:  a.cfg.FallbackDelay(),
		RequestTimeout: a.cfg.RequestTimeout(),
		StartSimulated: a.cfg.Session.StartSimulated,
		Logger:         a.logger,
	}
	if store != nil {
		opts.Recorder = store
	}
	return dispatch.New(a.newBackend(), opts)
}

// theme builds the configured theme. Validation has already rejected
// unknown names.
func (a *app) theme() *styles.Theme {
	mode, _ := styles.ParseMode(a.cfg.UI.Theme)
	return styles.NewTheme(mode)
}
