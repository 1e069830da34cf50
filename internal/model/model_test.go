// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/uniassist-tui/internal/agent"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 5, 0, 0, time.Local)
	m := NewUserMessage("hello", now)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, SenderUser, m.Sender)
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, "09:05", m.Timestamp)
	assert.Equal(t, agent.Default, m.Agent)
	assert.NotNil(t, m.ToolCalls)
	assert.False(t, m.IsTyping)
	assert.False(t, m.IsError)
	assert.True(t, m.IsUser())
}

func TestNewBotMessage(t *testing.T) {
	now := time.Now()
	tools := []string{"Read_Email", "Add_Offering_to_Batch_File"}
	r := Reply{Response: "done", Agent: "write", ToolCalls: tools}

	m := NewBotMessage(r, now)
	assert.Equal(t, SenderBot, m.Sender)
	assert.Equal(t, agent.Write, m.Agent)
	assert.Equal(t, tools, m.ToolCalls)
	assert.True(t, m.IsTyping)

	// The message must not share the reply's backing array.
	tools[0] = "changed"
	assert.Equal(t, "Read_Email", m.ToolCalls[0])
}

func TestNewBotMessage_Defaults(t *testing.T) {
	m := NewBotMessage(Reply{Response: "x"}, time.Now())
	assert.Equal(t, agent.Default, m.Agent)
	require.NotNil(t, m.ToolCalls)
	assert.Empty(t, m.ToolCalls)

	m = NewBotMessage(Reply{Response: "x", Agent: "PLANNER"}, time.Now())
	assert.Equal(t, agent.Default, m.Agent)
}

func TestNewErrorMessage(t *testing.T) {
	m := NewErrorMessage(time.Now())
	assert.True(t, m.IsError)
	assert.True(t, m.IsBot())
	assert.Equal(t, ErrorNotice, m.Text)
	assert.Equal(t, agent.Default, m.Agent)
	assert.False(t, m.IsTyping)
}

func TestMessageIDsOrdered(t *testing.T) {
	const n = 500
	seen := make(map[string]bool, n)
	prev := ""
	for i := 0; i < n; i++ {
		id := NewUserMessage("x", time.Now()).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		if prev != "" {
			require.Greater(t, id, prev)
		}
		prev = id
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistoryFrom(t *testing.T) {
	now := time.Now()
	log := []Message{
		NewUserMessage("sync please", now),
		NewErrorMessage(now),
		NewBotMessage(Reply{Response: "Starting full synchronization sequence..."}, now),
	}

	got := HistoryFrom(log)
	want := []HistoryEntry{
		{Role: "user", Content: "sync please"},
		{Role: "bot", Content: ErrorNotice},
		{Role: "bot", Content: "Starting full synchronization sequence..."},
	}
	assert.Equal(t, want, got)
}

func TestHistoryFrom_EmptyEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(HistoryFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
