// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/jeranaias/uniassist-tui/internal/agent"

// Reply is the assistant result, whether it came from the backend or from
// the local responder.
type Reply struct {
	Response  string   `json:"response"`
	Agent     string   `json:"agent,omitempty"`
	ToolCalls []string `json:"tool_calls,omitempty"`
}

// Tag returns the normalized agent tag of the reply.
func (r Reply) Tag() agent.Tag {
	return agent.Parse(r.Agent)
}

// Tools returns a copy of the tool call list, empty rather than nil.
func (r Reply) Tools() []string {
	out := make([]string, len(r.ToolCalls))
	copy(out, r.ToolCalls)
	return out
}

// HistoryEntry is one element of the history sent with each request.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryFrom serializes a conversation log in order. The result is never
// nil so it always encodes as a JSON array.
func HistoryFrom(log []Message) []HistoryEntry {
	history := make([]HistoryEntry, 0, len(log))
	for _, m := range log {
		history = append(history, HistoryEntry{
			Role:    m.Sender.String(),
			Content: m.Text,
		})
	}
	return history
}
