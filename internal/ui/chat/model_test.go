// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/uniassist-tui/internal/agent"
	"github.com/jeranaias/uniassist-tui/internal/backend"
	"github.com/jeranaias/uniassist-tui/internal/config"
	"github.com/jeranaias/uniassist-tui/internal/dispatch"
	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/reveal"
	"github.com/jeranaias/uniassist-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type stubBackend struct {
	reply model.Reply
	err   error
}

func (s stubBackend) Chat(_ context.Context, _ backend.Request) (model.Reply, error) {
	return s.reply, s.err
}

var (
	enterKey     = tea.KeyMsg{Type: tea.KeyEnter}
	newSession   = tea.KeyMsg{Type: tea.KeyCtrlN}
	toggleDemo   = tea.KeyMsg{Type: tea.KeyCtrlE}
	toggleTheme  = tea.KeyMsg{Type: tea.KeyCtrlT}
	quitKey      = tea.KeyMsg{Type: tea.KeyCtrlC}
	windowSize   = tea.WindowSizeMsg{Width: 120, Height: 40}
	readingReply = model.Reply{Response: "CG 101 meets in Room 304.", Agent: "READ", ToolCalls: []string{"Query_Student_Timetable"}}
)

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func newTestModel(t *testing.T, b dispatch.Backend, simulated bool, mutate ...func(*Options)) Model {
	t.Helper()
	d := dispatch.New(b, dispatch.Options{
		StartSimulated: simulated,
		Logger:         zerolog.Nop(),
	})
	t.Cleanup(d.Close)

	opts := DefaultOptions()
	opts.Theme = styles.NewTheme(styles.ModeDark)
	opts.Markdown = false
	for _, fn := range mutate {
		fn(&opts)
	}

	m, _ := update(New(d, opts), windowSize)
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect runs cmd and every command batched inside it.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func resultOf(t *testing.T, cmd tea.Cmd) dispatch.ResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if res, ok := msg.(dispatch.ResultMsg); ok {
			return res
		}
	}
	t.Fatal("command produced no ResultMsg")
	return dispatch.ResultMsg{}
}

func typeAndSend(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	m, cmd := update(m, enterKey)
	require.NotNil(t, cmd, "send of %q was rejected", text)
	return m, cmd
}

// roundTrip sends text, applies the reply and finishes its reveal.
func roundTrip(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, cmd := typeAndSend(t, m, text)
	m, _ = update(m, resultOf(t, cmd))
	for m.renderer.Active() {
		m.renderer.Advance()
	}
	return m
}

// =============================================================================
// SENDING
// =============================================================================

func TestSubmit_SimulatedReplyRevealsAndSettles(t *testing.T) {
	m := newTestModel(t, nil, true)

	m, cmd := typeAndSend(t, m, "Run the sync")
	st := m.dispatcher.State()
	assert.Empty(t, m.InputValue())
	assert.True(t, st.Loading)
	require.Len(t, st.Log, 1)
	assert.True(t, st.Log[0].IsUser())
	assert.Contains(t, m.View(), processingText)

	m, cmd = update(m, resultOf(t, cmd))
	st = m.dispatcher.State()
	require.Len(t, st.Log, 2)
	last := st.Log[1]
	assert.True(t, last.IsTyping)
	assert.True(t, m.renderer.Active())
	assert.Equal(t, last.ID, m.renderer.ID())
	assert.Equal(t, agent.Sync, st.CurrentAgent)

	var tick reveal.TickMsg
	for _, msg := range collect(cmd) {
		if tm, ok := msg.(reveal.TickMsg); ok {
			tick = tm
		}
	}
	require.Equal(t, last.ID, tick.ID)
	m, _ = update(m, tick)
	assert.Equal(t, "S", m.renderer.Displayed())

	// Tools are listed above the reply while it is still typing.
	typing := m.renderBotMessage(m.dispatcher.State().Log[1])
	logAt := strings.Index(typing, "Executed: Refresh_RAG_Database")
	cursorAt := strings.Index(typing, cursorGlyph)
	require.GreaterOrEqual(t, logAt, 0)
	require.GreaterOrEqual(t, cursorAt, 0)
	assert.Less(t, logAt, cursorAt)

	for m.renderer.Active() {
		m.renderer.Advance()
	}
	st = m.dispatcher.State()
	assert.False(t, st.Log[1].IsTyping)
	assert.False(t, st.Loading)

	m.updateViewport()
	view := m.View()
	assert.Contains(t, view, "Sync Agent")
	assert.Contains(t, view, "Executed: Refresh_RAG_Database")
	assert.NotContains(t, view, processingText)
}

func TestSubmit_BlankInputIsIgnored(t *testing.T) {
	m := newTestModel(t, nil, true)
	m.input.SetValue("   ")

	m, cmd := update(m, enterKey)
	assert.Nil(t, cmd)
	assert.True(t, m.dispatcher.State().Empty())
	assert.Equal(t, "   ", m.InputValue())
}

func TestSubmit_WhileLoadingIsIgnored(t *testing.T) {
	m := newTestModel(t, nil, true)
	m, _ = typeAndSend(t, m, "first")

	m.input.SetValue("second")
	m, cmd := update(m, enterKey)
	assert.Nil(t, cmd)
	assert.Len(t, m.dispatcher.State().Log, 1)
	assert.Equal(t, "second", m.InputValue())
}

// =============================================================================
// ACTIONS
// =============================================================================

func TestQuickActions_OnEmptyDashboard(t *testing.T) {
	for i, action := range QuickActions {
		t.Run(action.Label, func(t *testing.T) {
			m := newTestModel(t, nil, true)
			assert.Contains(t, m.View(), action.Label)

			m, cmd := update(m, altKey(rune('1'+i)))
			require.NotNil(t, cmd)
			log := m.dispatcher.State().Log
			require.Len(t, log, 1)
			assert.Equal(t, action.Prompt, log[0].Text)
		})
	}
}

func TestCommandBar_AfterConversationStarts(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = roundTrip(t, m, "hello")

	view := m.View()
	for _, action := range CommandBar {
		assert.Contains(t, view, action.Label)
	}

	m, cmd := update(m, altKey('3'))
	require.NotNil(t, cmd)
	last, ok := m.dispatcher.State().Last()
	require.True(t, ok)
	assert.Equal(t, "Run sync", last.Text)

	m, _ = update(m, resultOf(t, cmd))
	assert.Equal(t, agent.Sync, m.dispatcher.State().CurrentAgent)
}

func TestCommandBar_EachEntryRoutesToItsAgent(t *testing.T) {
	want := []agent.Tag{agent.Write, agent.Import, agent.Sync, agent.Test}
	for i, action := range CommandBar {
		t.Run(action.Label, func(t *testing.T) {
			m := newTestModel(t, nil, true)
			m = roundTrip(t, m, "hello")

			m, cmd := update(m, altKey(rune('1'+i)))
			m, _ = update(m, resultOf(t, cmd))
			assert.Equal(t, want[i], m.dispatcher.State().CurrentAgent)
		})
	}
}

// =============================================================================
// SESSION CONTROL
// =============================================================================

func TestNewSession_ClearsLogAndStopsReveal(t *testing.T) {
	m := newTestModel(t, nil, true)
	m, cmd := typeAndSend(t, m, "sync")
	m, _ = update(m, resultOf(t, cmd))
	require.True(t, m.renderer.Active())

	m, _ = update(m, newSession)
	st := m.dispatcher.State()
	assert.True(t, st.Empty())
	assert.Equal(t, agent.Default, st.CurrentAgent)
	assert.False(t, m.renderer.Active())
	assert.Contains(t, m.View(), "Welcome to "+appTitle)
}

func TestNewSession_LateResultIsDiscarded(t *testing.T) {
	m := newTestModel(t, stubBackend{reply: readingReply}, false)
	m, cmd := typeAndSend(t, m, "where is CG 101")

	m, _ = update(m, newSession)
	m, _ = update(m, resultOf(t, cmd))

	st := m.dispatcher.State()
	assert.True(t, st.Empty())
	assert.False(t, st.Loading)
	assert.False(t, m.renderer.Active())
}

func TestToggleDemo_UpdatesBadgeAndFooter(t *testing.T) {
	m := newTestModel(t, stubBackend{reply: readingReply}, false)
	view := m.View()
	assert.Contains(t, view, "Live")
	assert.NotContains(t, view, StatusLine(true))

	m, _ = update(m, toggleDemo)
	assert.True(t, m.dispatcher.State().Simulated)
	view = m.View()
	assert.Contains(t, view, "Demo")
	assert.Contains(t, view, StatusLine(true))
}

func TestToggleTheme(t *testing.T) {
	m := newTestModel(t, nil, true)
	require.True(t, m.Theme().IsDark)

	m, _ = update(m, toggleTheme)
	assert.False(t, m.Theme().IsDark)

	m, _ = update(m, toggleTheme)
	assert.True(t, m.Theme().IsDark)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil, true)
	_, cmd := update(m, quitKey)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// =============================================================================
// FAILURES
// =============================================================================

func TestBackendFailure_ShowsNoticeThenFallback(t *testing.T) {
	m := newTestModel(t, stubBackend{err: errors.New("connection refused")}, false)
	m, cmd := typeAndSend(t, m, "sync now")

	m, cmd = update(m, resultOf(t, cmd))
	st := m.dispatcher.State()
	require.Len(t, st.Log, 2)
	assert.True(t, st.Log[1].IsError)
	assert.True(t, st.Simulated)
	assert.True(t, st.Loading)
	assert.False(t, m.renderer.Active())
	assert.Contains(t, m.View(), model.ErrorNotice)

	fallback := resultOf(t, cmd)
	assert.Equal(t, dispatch.SourceFallback, fallback.Source)
	m, _ = update(m, fallback)

	st = m.dispatcher.State()
	require.Len(t, st.Log, 3)
	assert.True(t, st.Log[2].IsTyping)
	assert.Equal(t, agent.Sync, st.CurrentAgent)
	assert.False(t, st.Loading)
	assert.Contains(t, m.View(), StatusLine(true))
}

// =============================================================================
// REVEAL
// =============================================================================

func TestNewReveal_SettlesPreviousTypingMessage(t *testing.T) {
	m := newTestModel(t, nil, true)

	m, cmd := typeAndSend(t, m, "sync")
	m, _ = update(m, resultOf(t, cmd))
	first, _ := m.dispatcher.State().Last()
	require.True(t, first.IsTyping)

	m, cmd = typeAndSend(t, m, "import")
	m, _ = update(m, resultOf(t, cmd))

	st := m.dispatcher.State()
	typing := 0
	for _, msg := range st.Log {
		if msg.IsTyping {
			typing++
		}
		if msg.ID == first.ID {
			assert.False(t, msg.IsTyping, "earlier reply should be settled")
		}
	}
	assert.Equal(t, 1, typing)

	second, _ := st.Last()
	assert.Equal(t, second.ID, m.renderer.ID())
}

func TestRevealDisabled_SettlesImmediately(t *testing.T) {
	m := newTestModel(t, nil, true, func(o *Options) { o.RevealEnabled = false })

	m, cmd := typeAndSend(t, m, "test")
	m, cmd = update(m, resultOf(t, cmd))
	assert.Nil(t, cmd)

	last, _ := m.dispatcher.State().Last()
	assert.False(t, last.IsTyping)
	assert.False(t, m.renderer.Active())
}

func TestMarkdown_RendersSettledReplies(t *testing.T) {
	m := newTestModel(t, stubBackend{reply: model.Reply{Response: "**Room 304**", Agent: "READ"}}, false,
		func(o *Options) { o.Markdown = true })
	m = roundTrip(t, m, "where")
	m.updateViewport()

	view := m.View()
	assert.Contains(t, view, "304")
	assert.NotContains(t, view, "**")
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigReload_AppliesUISettings(t *testing.T) {
	m := newTestModel(t, nil, true)
	m = roundTrip(t, m, "where is my class")
	require.Contains(t, m.View(), "Executed: Query_Student_Timetable")

	cfg := config.Default()
	cfg.UI.Theme = "light"
	cfg.UI.ShowToolCalls = false
	cfg.Reveal.Enabled = false

	m, cmd := update(m, ConfigReloadedMsg{Config: cfg})
	assert.Nil(t, cmd)
	assert.False(t, m.Theme().IsDark)
	assert.Equal(t, styles.ModeLight, m.Theme().Mode)
	assert.False(t, m.revealEnabled)
	assert.NotContains(t, m.View(), "Executed:")
}

func TestConfigReload_ErrorKeepsSettings(t *testing.T) {
	m := newTestModel(t, nil, true)

	m, _ = update(m, ConfigReloadedMsg{Err: errors.New("invalid config")})
	assert.True(t, m.Theme().IsDark)
	assert.True(t, m.showTools)
	assert.True(t, m.revealEnabled)
}

func windowSizeOf(width int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: 40}
}
