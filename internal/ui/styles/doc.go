// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the uniassist TUI.

# Colors (colors.go)

All colors are Lip Gloss AdaptiveColors. Each agent theme has one accent:

	purple   Test Agent
	blue     Read Agent
	amber    Write Agent
	emerald  Sync Agent
	rose     Import Agent
	slate    Router

AgentColor performs the mapping. Status helpers (RenderSuccess,
RenderError, ...) pair each color with an ASCII shape.

# Theme (theme.go)

NewTheme resolves ModeAuto with termenv, then pins lipgloss to the chosen
background so every AdaptiveColor agrees. Toggle switches between dark and
light at runtime and rebuilds the styles.
*/
package styles
