// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/uniassist-tui/internal/agent"
)

func TestAgentColor(t *testing.T) {
	tests := []struct {
		theme agent.Theme
		want  lipgloss.AdaptiveColor
	}{
		{agent.ThemePurple, Purple},
		{agent.ThemeBlue, Blue},
		{agent.ThemeAmber, Amber},
		{agent.ThemeEmerald, Emerald},
		{agent.ThemeRose, Rose},
		{agent.ThemeSlate, Slate},
		{agent.Theme("plaid"), Slate},
	}

	for _, tt := range tests {
		if got := AgentColor(tt.theme); got != tt.want {
			t.Errorf("AgentColor(%q) = %v, want %v", tt.theme, got, tt.want)
		}
	}
}

func TestAgentColor_EveryTagDistinct(t *testing.T) {
	seen := make(map[lipgloss.AdaptiveColor]agent.Tag)
	for _, tag := range agent.All() {
		c := AgentColor(tag.Attributes().Theme)
		if prev, ok := seen[c]; ok {
			t.Errorf("%v and %v share color %v", prev, tag, c)
		}
		seen[c] = tag
	}
}

func TestAdaptiveColorsHaveBothVariants(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"Purple":        Purple,
		"Blue":          Blue,
		"Amber":         Amber,
		"Emerald":       Emerald,
		"Rose":          Rose,
		"Slate":         Slate,
		"Cyan":          Cyan,
		"TextPrimary":   TextPrimary,
		"UserBubbleBg":  UserBubbleBg,
		"ErrorBubbleBg": ErrorBubbleBg,
		"ToolLogBg":     ToolLogBg,
	}
	for name, c := range colors {
		if c.Light == "" || c.Dark == "" {
			t.Errorf("%s is missing a light or dark variant", name)
		}
		if !strings.HasPrefix(c.Light, "#") || !strings.HasPrefix(c.Dark, "#") {
			t.Errorf("%s should use hex colors, got %+v", name, c)
		}
	}
}

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		want   string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
		{"info", RenderInfo, StatusIndicators.Info},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.render("config written")
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing indicator %q", out, tt.want)
			}
			if !strings.Contains(out, "config written") {
				t.Errorf("output %q missing message", out)
			}
		})
	}
}
