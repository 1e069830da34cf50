// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation messages and
// assistant replies.
//
// # Key Types
//
//   - Message: one entry of the conversation log (user, bot, or error notice)
//   - Reply: the result object produced by the backend or the local responder
//   - HistoryEntry: the {role, content} shape sent to the backend
//
// # Usage
//
//	user := model.NewUserMessage("Where is my CG 101 class?", time.Now())
//	bot := model.NewBotMessage(reply, time.Now())
//	history := model.HistoryFrom(log)
package model
