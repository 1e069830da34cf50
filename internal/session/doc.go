// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the conversation state and its transitions.
//
// State is a plain value. Every transition is a pure function that takes a
// State and returns the next one; the argument is never modified, and the
// message log is copied on write so older States stay valid snapshots.
//
// # Key Types
//
//   - State: log, loading flag, current agent, sticky simulated flag, epoch
//
// # Transitions
//
//   - Submit: append a user message and start loading
//   - ApplyReply: append the bot reply and stop loading
//   - ApplyFailure: append the error notice and switch to simulated mode
//   - Discard: drop a result that belongs to an earlier conversation
//   - Reset: clear the conversation, keeping loading and simulated
//   - ToggleSimulated: user-driven demo/live switch
//   - SettleTyping: mark a message as fully revealed
//
// # Usage
//
//	s := session.New(false)
//	s, ok := session.Submit(s, "Run sync", time.Now())
//	if ok {
//	    s = session.ApplyReply(s, reply, time.Now())
//	}
package session
