// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/ui/styles"
)

const (
	appTitle        = "UniAssist"
	statusOK        = "System Operational"
	statusSimulated = " (Simulated)"
	processingText  = "Processing..."
	cursorGlyph     = "▌"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	parts := []string{m.renderHeader(), m.viewport.View()}
	if !m.dispatcher.State().Empty() {
		parts = append(parts, m.renderCommandBar())
	}
	parts = append(parts, m.renderInput(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	st := m.dispatcher.State()
	t := m.theme

	title := t.HeaderTitle.Render(appTitle)
	badges := lipgloss.JoinHorizontal(lipgloss.Center,
		t.RenderAgentBadge(st.CurrentAgent),
		" ",
		t.RenderModeBadge(st.Simulated),
	)

	inner := max(m.width-2, 0)
	gap := inner - lipgloss.Width(title) - lipgloss.Width(badges)
	if gap < 1 {
		// Narrow terminal: keep the badges, cut the title.
		title = t.HeaderTitle.Render(truncateToWidth(appTitle, max(inner-lipgloss.Width(badges)-1, 0)))
		gap = 1
	}

	line := title + strings.Repeat(" ", gap) + badges
	return t.Header.Width(m.width).Render(line)
}

// =============================================================================
// BODY
// =============================================================================

// renderBody produces the viewport content: the dashboard for an empty
// session, otherwise the message log plus the loading line.
func (m Model) renderBody() string {
	st := m.dispatcher.State()
	if st.Empty() && !st.Loading {
		return m.renderDashboard()
	}

	var b strings.Builder
	for i, msg := range st.Log {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	if st.Loading {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.spinner.View() + " " + m.theme.Processing.Render(processingText))
	}
	return b.String()
}

func (m Model) renderMessage(msg model.Message) string {
	switch {
	case msg.IsError:
		return m.renderErrorMessage(msg)
	case msg.IsUser():
		return m.renderUserMessage(msg)
	default:
		return m.renderBotMessage(msg)
	}
}

func (m Model) renderMeta(msg model.Message) string {
	return m.theme.SenderName.Render(msg.Sender.DisplayName()) + " " +
		m.theme.Timestamp.Render(msg.Timestamp)
}

func (m Model) renderUserMessage(msg model.Message) string {
	width := m.bubbleWidth()
	body := m.theme.UserBubble.Width(width).Render(msg.Text)
	return m.renderMeta(msg) + "\n" + body
}

func (m Model) renderErrorMessage(msg model.Message) string {
	body := m.theme.ErrorBubble.Render(styles.StatusIndicators.Error + " " + msg.Text)
	return m.renderMeta(msg) + "\n" + body
}

func (m Model) renderBotMessage(msg model.Message) string {
	t := m.theme
	width := m.bubbleWidth()

	header := t.AgentStyle(msg.Agent).Render(msg.Agent.Attributes().Icon) + " " + m.renderMeta(msg)

	var content string
	switch {
	case msg.IsTyping && m.renderer.ID() == msg.ID:
		content = m.renderer.Displayed() + t.Cursor.Render(cursorGlyph)
	case !msg.IsTyping && m.markdown:
		content = m.md.render(msg.ID, msg.Text, width-4, t.GlamourStyle())
	default:
		content = msg.Text
	}

	bubble := t.BotBubble.BorderForeground(styles.AgentColor(msg.Agent.Attributes().Theme)).
		Width(width).
		Render(content)

	// The tool log sits above the reply and is shown while it types.
	if m.showTools && len(msg.ToolCalls) > 0 {
		return header + "\n" + m.renderToolLog(msg.ToolCalls, width) + "\n" + bubble
	}
	return header + "\n" + bubble
}

func (m Model) renderToolLog(tools []string, width int) string {
	t := m.theme
	lines := make([]string, 0, len(tools)+1)
	lines = append(lines, t.ToolLogTitle.Render("Tool execution log"))
	for _, tool := range tools {
		line := styles.StatusIndicators.Success + " Executed: " + tool
		lines = append(lines, t.ToolLogItem.Render(truncateToWidth(line, max(width-3, 10))))
	}
	return t.ToolLog.Render(strings.Join(lines, "\n"))
}

// bubbleWidth leaves room for the margins on the message bubbles.
func (m Model) bubbleWidth() int {
	switch m.theme.GetLayoutMode() {
	case styles.LayoutNarrow:
		return max(m.width-6, 10)
	case styles.LayoutMedium:
		return m.width - 10
	default:
		return min(m.width-16, 100)
	}
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) renderDashboard() string {
	t := m.theme

	title := t.DashboardTitle.Render("Welcome to " + appTitle)
	hint := t.DashboardHint.Render("Ask about class schedules, process the inbox, import batches or sync the database.")

	cards := make([]string, len(QuickActions))
	for i, a := range QuickActions {
		k := m.keys.Actions[i].Help().Key
		cards[i] = t.QuickAction.Render(t.ShortcutKey.Render(k) + " " + a.Label)
	}

	var grid string
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], " ", cards[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], " ", cards[3])
		grid = lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	box := t.DashboardBox.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", hint, "", grid))
	return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// COMMAND BAR, INPUT, FOOTER
// =============================================================================

func (m Model) renderCommandBar() string {
	t := m.theme
	items := make([]string, len(CommandBar))
	for i, a := range CommandBar {
		k := m.keys.Actions[i].Help().Key
		items[i] = t.CommandItem.Render(t.ShortcutKey.Render(k) + " " + a.Label)
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	return t.CommandBar.Width(m.width).MaxHeight(commandBarHeight).Render(line)
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

func (m Model) renderFooter() string {
	t := m.theme
	st := m.dispatcher.State()

	status := t.FooterOK.Render("● " + statusOK)
	if st.Simulated {
		status += t.FooterSimulated.Render(statusSimulated)
	}

	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - 2 - lipgloss.Width(status) - lipgloss.Width(hints)
	if gap < 1 {
		return t.Footer.Width(m.width).Render(status)
	}
	return t.Footer.Width(m.width).Render(status + strings.Repeat(" ", gap) + hints)
}

// truncateToWidth cuts s to at most width terminal columns.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// StatusLine is the plain-text footer status.
func StatusLine(simulated bool) string {
	if simulated {
		return fmt.Sprintf("%s%s", statusOK, statusSimulated)
	}
	return statusOK
}
