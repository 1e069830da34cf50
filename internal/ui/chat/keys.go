// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit      key.Binding
	Clear       key.Binding
	NewSession  key.Binding
	ToggleDemo  key.Binding
	ToggleTheme key.Binding
	Actions     [4]key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear input"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new session"),
		),
		ToggleDemo: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "demo/live"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Actions: [4]key.Binding{
			key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("M-1", "action 1")),
			key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("M-2", "action 2")),
			key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("M-3", "action 3")),
			key.NewBinding(key.WithKeys("alt+4"), key.WithHelp("M-4", "action 4")),
		},
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewSession, k.ToggleDemo, k.ToggleTheme, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear, k.Quit},
		{k.NewSession, k.ToggleDemo, k.ToggleTheme},
		k.Actions[:],
		{k.PageUp, k.PageDown},
	}
}

// actionIndex returns which alt+N binding msg matches, or -1.
func (k KeyMap) actionIndex(msg tea.KeyMsg) int {
	for i, b := range k.Actions {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
