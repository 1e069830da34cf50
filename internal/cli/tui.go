// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/uniassist-tui/internal/config"
	"github.com/jeranaias/uniassist-tui/internal/ui/chat"
)

// runTUI starts the full-screen chat.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	store := a.openTelemetry()
	if store != nil {
		defer store.Close()
	}
	d := a.newDispatcher(store)
	defer d.Close()

	m := chat.New(d, chat.Options{
		Theme:          a.theme(),
		RevealEnabled:  a.cfg.Reveal.Enabled,
		RevealInterval: a.cfg.RevealInterval(),
		Markdown:       a.cfg.UI.Markdown,
		ShowToolCalls:  a.cfg.UI.ShowToolCalls,
		Logger:         a.logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go a.watchConfig(ctx, p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running uniassist: %w", err)
	}
	return nil
}

// watchConfig forwards config file changes to the program until ctx ends.
// Flags given on the command line keep precedence over the reloaded file.
func (a *app) watchConfig(ctx context.Context, p *tea.Program) {
	err := config.Watch(ctx, a.cfgPath, func(cfg *config.Config, err error) {
		if cfg != nil {
			a.override(cfg)
			if verr := cfg.Validate(); verr != nil {
				cfg, err = nil, verr
			}
		}
		p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("path", a.cfgPath).Msg("config live reload disabled")
	}
}
