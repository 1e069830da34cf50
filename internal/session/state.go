// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"time"

	"github.com/jeranaias/uniassist-tui/internal/agent"
	"github.com/jeranaias/uniassist-tui/internal/model"
)

// =============================================================================
// STATE
// =============================================================================

// State is one snapshot of the conversation.
type State struct {
	// Log is append-only between resets.
	Log []model.Message

	// Loading is true while a request is outstanding. At most one request
	// is in flight at a time.
	Loading bool

	// CurrentAgent is the agent of the most recent reply.
	CurrentAgent agent.Tag

	// Simulated is sticky: once set by a failure it stays set until the
	// user toggles it.
	Simulated bool

	// Epoch identifies the conversation. Reset increments it so results
	// of requests sent before the reset can be recognized.
	Epoch uint64
}

// New returns an empty session.
func New(simulated bool) State {
	return State{
		CurrentAgent: agent.Default,
		Simulated:    simulated,
	}
}

// Empty reports whether the log has no messages (the dashboard view).
func (s State) Empty() bool {
	return len(s.Log) == 0
}

// Last returns the newest message, if any.
func (s State) Last() (model.Message, bool) {
	if len(s.Log) == 0 {
		return model.Message{}, false
	}
	return s.Log[len(s.Log)-1], true
}

// History serializes the current log for the backend.
func (s State) History() []model.HistoryEntry {
	return model.HistoryFrom(s.Log)
}

// Typing returns the newest message that is still being revealed.
func (s State) Typing() (model.Message, bool) {
	for i := len(s.Log) - 1; i >= 0; i-- {
		if s.Log[i].IsTyping {
			return s.Log[i], true
		}
	}
	return model.Message{}, false
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Submit appends a user message and starts loading. It reports false and
// returns s unchanged when text is blank or a request is already
// outstanding.
func Submit(s State, text string, now time.Time) (State, bool) {
	if strings.TrimSpace(text) == "" || s.Loading {
		return s, false
	}

	s.Log = appendMessage(s.Log, model.NewUserMessage(text, now))
	s.Loading = true
	s.CurrentAgent = agent.Default
	return s, true
}

// ApplyReply appends the bot message for r and stops loading.
func ApplyReply(s State, r model.Reply, now time.Time) State {
	msg := model.NewBotMessage(r, now)
	s.Log = appendMessage(s.Log, msg)
	s.CurrentAgent = msg.Agent
	s.Loading = false
	return s
}

// ApplyFailure appends the error notice and switches to simulated mode.
// Loading stays set; the fallback reply will clear it.
func ApplyFailure(s State, now time.Time) State {
	s.Log = appendMessage(s.Log, model.NewErrorMessage(now))
	s.Simulated = true
	return s
}

// Discard handles a result that arrived after a reset. Nothing is appended,
// loading is cleared, and a failure still makes the session simulated.
func Discard(s State, failed bool) State {
	s.Loading = false
	if failed {
		s.Simulated = true
	}
	return s
}

// Abandon gives up on the outstanding request without a result. Loading is
// cleared and the epoch bumped, so a result that still turns up is
// discarded. The log is kept. A state that is not loading is unchanged.
func Abandon(s State) State {
	if !s.Loading {
		return s
	}
	s.Loading = false
	s.Epoch++
	return s
}

// Reset clears the conversation. Loading and Simulated carry over.
func Reset(s State) State {
	s.Log = nil
	s.CurrentAgent = agent.Default
	s.Epoch++
	return s
}

// ToggleSimulated flips demo mode.
func ToggleSimulated(s State) State {
	s.Simulated = !s.Simulated
	return s
}

// SettleTyping clears IsTyping on the message with the given id. Unknown
// ids and already settled messages leave s unchanged.
func SettleTyping(s State, id string) State {
	for i := range s.Log {
		if s.Log[i].ID != id {
			continue
		}
		if !s.Log[i].IsTyping {
			return s
		}
		log := make([]model.Message, len(s.Log))
		copy(log, s.Log)
		log[i].IsTyping = false
		s.Log = log
		return s
	}
	return s
}

// appendMessage appends without writing into a backing array that an older
// State might share.
func appendMessage(log []model.Message, m model.Message) []model.Message {
	return append(log[:len(log):len(log)], m)
}
