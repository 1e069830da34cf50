// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/uniassist-tui/internal/agent"
)

// TimestampLayout is the display format for message timestamps.
const TimestampLayout = "15:04"

// ErrorNotice is the text of the message appended when the backend fails.
const ErrorNotice = "Backend connection failed. Switching to Demo Mode."

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the conversation log. Every field except
// IsTyping is fixed once the message is appended.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`

	// Content
	Text      string    `json:"text"`
	Agent     agent.Tag `json:"agent"`
	ToolCalls []string  `json:"tool_calls"`

	// IsError marks the system-generated failure notice.
	IsError bool `json:"is_error,omitempty"`

	// IsTyping is true while the reveal of Text has not finished.
	IsTyping bool `json:"-"`
}

// NewUserMessage creates a user message.
func NewUserMessage(text string, now time.Time) Message {
	return Message{
		ID:        generateID(),
		Sender:    SenderUser,
		CreatedAt: now,
		Timestamp: now.Format(TimestampLayout),
		Text:      text,
		Agent:     agent.Default,
		ToolCalls: []string{},
	}
}

// NewBotMessage creates a bot message from a reply. The agent tag is
// normalized and the message starts in the typing state.
func NewBotMessage(r Reply, now time.Time) Message {
	return Message{
		ID:        generateID(),
		Sender:    SenderBot,
		CreatedAt: now,
		Timestamp: now.Format(TimestampLayout),
		Text:      r.Response,
		Agent:     r.Tag(),
		ToolCalls: r.Tools(),
		IsTyping:  true,
	}
}

// NewErrorMessage creates the bot-side notice shown when the backend cannot
// be reached.
func NewErrorMessage(now time.Time) Message {
	return Message{
		ID:        generateID(),
		Sender:    SenderBot,
		CreatedAt: now,
		Timestamp: now.Format(TimestampLayout),
		Text:      ErrorNotice,
		Agent:     agent.Default,
		ToolCalls: []string{},
		IsError:   true,
	}
}

// IsUser returns true for messages typed by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot returns true for replies and error notices.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// generateID returns a time-ordered identifier. UUIDv7 values generated in
// one process sort in creation order.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
