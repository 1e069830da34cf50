// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for uniassist.
//
// Configuration is read from ~/.uniassist/config.toml (or a path given on
// the command line), layered over built-in defaults, then environment
// overrides are applied and the result is validated.
//
// # Environment Variables
//
//   - UNIASSIST_API_URL: overrides backend.base_url
//   - UNIASSIST_SIMULATED: overrides session.start_simulated ("1"/"true")
//   - UNIASSIST_LOG_LEVEL: overrides log.level
//   - UNIASSIST_THEME: overrides ui.theme
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Backend.BaseURL)
//
// Watch picks up edits while the TUI is running:
//
//	go config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
