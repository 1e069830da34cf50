// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the delay between two revealed runes.
const DefaultInterval = 10 * time.Millisecond

// TickMsg advances the reveal of message ID by one rune. Gen ties the tick
// to one Start call.
type TickMsg struct {
	ID  string
	Gen uint64
}

// Renderer reveals one text at a time. It is not safe for concurrent use;
// call it from the Bubble Tea update loop only.
type Renderer struct {
	interval   time.Duration
	onComplete func(id string)

	id        string
	text      []rune
	cursor    int
	displayed strings.Builder
	gen       uint64
	active    bool
}

// NewRenderer creates a renderer. onComplete, if set, is called exactly once
// per Start when the last rune has been revealed. It is not called for
// reveals that are stopped or restarted before finishing.
func NewRenderer(interval time.Duration, onComplete func(id string)) *Renderer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Renderer{
		interval:   interval,
		onComplete: onComplete,
	}
}

// SetInterval changes the tick interval for subsequent ticks.
func (r *Renderer) SetInterval(d time.Duration) {
	if d > 0 {
		r.interval = d
	}
}

// Start begins revealing text for message id, discarding any reveal in
// progress. Empty text completes immediately and returns nil.
func (r *Renderer) Start(id, text string) tea.Cmd {
	r.gen++
	r.id = id
	r.text = []rune(text)
	r.cursor = 0
	r.displayed.Reset()
	r.active = true

	if len(r.text) == 0 {
		r.finish()
		return nil
	}
	return r.tick()
}

// Update handles a TickMsg. Ticks for another message or an earlier
// generation are dropped.
func (r *Renderer) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || !r.active || tick.Gen != r.gen || tick.ID != r.id {
		return nil
	}
	if r.Advance() {
		return nil
	}
	return r.tick()
}

// Advance reveals the next rune. It reports true when that rune was the
// last one, after the completion callback has run.
func (r *Renderer) Advance() bool {
	if !r.active {
		return false
	}
	r.displayed.WriteRune(r.text[r.cursor])
	r.cursor++
	if r.cursor < len(r.text) {
		return false
	}
	r.finish()
	return true
}

// Stop cancels the reveal in progress. Pending ticks become stale and the
// completion callback is not invoked.
func (r *Renderer) Stop() {
	r.gen++
	r.active = false
}

// Displayed returns the revealed prefix.
func (r *Renderer) Displayed() string {
	return r.displayed.String()
}

// ID returns the message id of the current or last reveal.
func (r *Renderer) ID() string {
	return r.id
}

// Active reports whether a reveal is in progress.
func (r *Renderer) Active() bool {
	return r.active
}

// Progress returns revealed and total rune counts.
func (r *Renderer) Progress() (done, total int) {
	return r.cursor, len(r.text)
}

func (r *Renderer) finish() {
	r.active = false
	if r.onComplete != nil {
		r.onComplete(r.id)
	}
}

func (r *Renderer) tick() tea.Cmd {
	id, gen := r.id, r.gen
	return tea.Tick(r.interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen}
	})
}
