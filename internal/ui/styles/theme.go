// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/uniassist-tui/internal/agent"
)

// Mode selects the background the theme renders for.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeDark, ModeLight:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return ModeAuto, fmt.Errorf("unknown theme %q", s)
	}
}

// Theme holds all the styled components for the application.
type Theme struct {
	Mode   Mode
	IsDark bool

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	AgentBadge  lipgloss.Style
	DemoBadge   lipgloss.Style
	LiveBadge   lipgloss.Style

	// Messages
	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	SenderName  lipgloss.Style
	Timestamp   lipgloss.Style
	Cursor      lipgloss.Style

	// Tool execution log
	ToolLog      lipgloss.Style
	ToolLogTitle lipgloss.Style
	ToolLogItem  lipgloss.Style

	// Dashboard
	DashboardBox   lipgloss.Style
	DashboardTitle lipgloss.Style
	DashboardHint  lipgloss.Style
	QuickAction    lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// Command bar and input
	CommandBar     lipgloss.Style
	CommandItem    lipgloss.Style
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Loading
	Spinner    lipgloss.Style
	Processing lipgloss.Style

	// Footer
	Footer          lipgloss.Style
	FooterOK        lipgloss.Style
	FooterSimulated lipgloss.Style
}

// NewTheme creates a theme for mode. ModeAuto asks the terminal for its
// background color.
func NewTheme(mode Mode) *Theme {
	t := &Theme{}
	t.SetMode(mode)
	return t
}

// SetMode switches to mode and rebuilds every style. Unknown modes are
// treated as ModeAuto.
func (t *Theme) SetMode(mode Mode) {
	switch mode {
	case ModeDark:
		t.IsDark = true
	case ModeLight:
		t.IsDark = false
	default:
		mode = ModeAuto
		t.IsDark = termenv.HasDarkBackground()
	}
	t.Mode = mode
	t.apply()
}

// Toggle flips between dark and light and rebuilds every style.
func (t *Theme) Toggle() {
	t.IsDark = !t.IsDark
	if t.IsDark {
		t.Mode = ModeDark
	} else {
		t.Mode = ModeLight
	}
	t.apply()
}

// GlamourStyle names the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// AgentStyle returns the badge style for tag, colored by its theme.
func (t *Theme) AgentStyle(tag agent.Tag) lipgloss.Style {
	return t.AgentBadge.Background(AgentColor(tag.Attributes().Theme))
}

// RenderAgentBadge renders "<icon> <label>" for tag.
func (t *Theme) RenderAgentBadge(tag agent.Tag) string {
	attrs := tag.Attributes()
	return t.AgentStyle(tag).Render(attrs.Icon + " " + attrs.Label)
}

// RenderModeBadge renders the Demo or Live badge.
func (t *Theme) RenderModeBadge(simulated bool) string {
	if simulated {
		return t.DemoBadge.Render("Demo")
	}
	return t.LiveBadge.Render("Live")
}

// apply pins lipgloss to the chosen background and rebuilds the styles.
func (t *Theme) apply() {
	lipgloss.SetHasDarkBackground(t.IsDark)
	t.initStyles()
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.AgentBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.DemoBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 1)

	t.LiveBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Bold(true).
		Padding(0, 1)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 2).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Slate).
		Padding(0, 1).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Rose).
		PaddingLeft(1).
		Bold(true)

	t.SenderName = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Cursor = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ToolLog = lipgloss.NewStyle().
		Foreground(ToolLogFg).
		Background(ToolLogBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Emerald).
		PaddingLeft(1)

	t.ToolLogTitle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ToolLogItem = lipgloss.NewStyle().
		Foreground(ToolLogFg)

	t.DashboardBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3)

	t.DashboardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.DashboardHint = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.QuickAction = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CommandBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.CommandItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 1).
		MarginRight(1)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.Processing = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Footer = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextMuted).
		Padding(0, 1)

	t.FooterOK = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.FooterSimulated = lipgloss.NewStyle().
		Foreground(Amber)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
