// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/uniassist-tui/internal/dispatch"
	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/reveal"
	"github.com/jeranaias/uniassist-tui/internal/ui/styles"
)

// Options configures the chat model.
type Options struct {
	Theme *styles.Theme

	// RevealEnabled types bot replies out; otherwise they appear at once.
	RevealEnabled  bool
	RevealInterval time.Duration

	Markdown      bool
	ShowToolCalls bool

	Logger zerolog.Logger
}

// DefaultOptions returns reveal and markdown on with the dark theme.
func DefaultOptions() Options {
	return Options{
		Theme:          styles.NewTheme(styles.ModeDark),
		RevealEnabled:  true,
		RevealInterval: reveal.DefaultInterval,
		Markdown:       true,
		ShowToolCalls:  true,
		Logger:         zerolog.Nop(),
	}
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	// Session and effects
	dispatcher *dispatch.Dispatcher
	renderer   *reveal.Renderer

	// Presentation
	theme *styles.Theme
	md    *markdown
	keys  KeyMap
	help  help.Model

	// Widgets
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	revealEnabled bool
	markdown      bool
	showTools     bool

	width  int
	height int

	logger zerolog.Logger
}

// Layout heights outside the viewport. Kept in sync with View.
const (
	headerHeight     = 2
	commandBarHeight = 1
	inputHeight      = 2
	footerHeight     = 1
)

// New creates a chat model over d.
func New(d *dispatch.Dispatcher, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ModeAuto)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about schedules, the inbox, imports or sync..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Theme.Spinner

	logger := opts.Logger.With().Str("component", "chat").Logger()

	return Model{
		dispatcher:    d,
		renderer:      reveal.NewRenderer(opts.RevealInterval, d.CompleteReveal),
		theme:         opts.Theme,
		md:            newMarkdown(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		input:         ti,
		viewport:      vp,
		spinner:       sp,
		revealEnabled: opts.RevealEnabled,
		markdown:      opts.Markdown,
		showTools:     opts.ShowToolCalls,
		logger:        logger,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dispatch.ResultMsg:
		return m.handleResult(msg)

	case reveal.TickMsg:
		cmd := m.renderer.Update(msg)
		m.updateViewport()
		return m, cmd

	case spinner.TickMsg:
		if !m.dispatcher.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.help.Width = m.width

	reserved := headerHeight + commandBarHeight + inputHeight + footerHeight
	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(m.height-reserved, 1)

	const promptLen = 2
	m.input.Width = max(m.width-4-promptLen, 10)

	m.updateViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.renderer.Stop()
		m.dispatcher.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		cmd := m.send(m.input.Value())
		if cmd != nil {
			m.input.Reset()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.NewSession):
		m.renderer.Stop()
		m.dispatcher.Reset()
		m.md.reset()
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDemo):
		m.dispatcher.ToggleSimulated()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.theme.Toggle()
		m.spinner.Style = m.theme.Spinner
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if i := m.keys.actionIndex(msg); i >= 0 {
		action := actionFor(m.dispatcher.State().Empty(), i)
		m.logger.Debug().Str("action", action.Label).Msg("action selected")
		return m, m.send(action.Prompt)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send hands text to the dispatcher. It returns nil when the dispatcher
// rejected the text.
func (m *Model) send(text string) tea.Cmd {
	cmd := m.dispatcher.Send(text)
	if cmd == nil {
		return nil
	}
	m.updateViewport()
	m.viewport.GotoBottom()
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) handleResult(msg dispatch.ResultMsg) (tea.Model, tea.Cmd) {
	before := len(m.dispatcher.State().Log)
	cmds := []tea.Cmd{m.dispatcher.Update(msg)}

	st := m.dispatcher.State()
	if last, ok := st.Last(); ok && len(st.Log) > before && last.IsBot() && last.IsTyping {
		cmds = append(cmds, m.startReveal(last))
	}

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(cmds...)
}

// startReveal begins typing out msg. A reveal still running for an older
// message is settled first so at most one message is ever typing.
func (m *Model) startReveal(msg model.Message) tea.Cmd {
	if m.renderer.Active() && m.renderer.ID() != msg.ID {
		prev := m.renderer.ID()
		m.renderer.Stop()
		m.dispatcher.CompleteReveal(prev)
	}
	if !m.revealEnabled {
		m.dispatcher.CompleteReveal(msg.ID)
		return nil
	}
	return m.renderer.Start(msg.ID, msg.Text)
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("config reload failed, keeping current settings")
		return m, nil
	}
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}

	if mode, err := styles.ParseMode(cfg.UI.Theme); err == nil && mode != m.theme.Mode {
		m.theme.SetMode(mode)
		m.spinner.Style = m.theme.Spinner
	}

	m.markdown = cfg.UI.Markdown
	m.showTools = cfg.UI.ShowToolCalls
	m.revealEnabled = cfg.Reveal.Enabled
	m.renderer.SetInterval(cfg.RevealInterval())
	m.dispatcher.SetDelays(cfg.SimulatedDelay(), cfg.FallbackDelay())

	m.logger.Info().
		Str("theme", string(m.theme.Mode)).
		Bool("markdown", m.markdown).
		Bool("reveal", m.revealEnabled).
		Msg("config reloaded")

	m.updateViewport()
	return m, nil
}

// updateViewport re-renders the log into the viewport, keeping the scroll
// pinned to the bottom when it already was.
func (m *Model) updateViewport() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderBody())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Dispatcher returns the session owner.
func (m Model) Dispatcher() *dispatch.Dispatcher {
	return m.dispatcher
}

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

// InputValue returns the current text input contents.
func (m Model) InputValue() string {
	return m.input.Value()
}
