// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"time"

	"github.com/jeranaias/uniassist-tui/internal/model"
)

// Source identifies what produced a result.
type Source string

const (
	// SourceLive is the backend.
	SourceLive Source = "live"
	// SourceSimulated is the local responder in demo mode.
	SourceSimulated Source = "simulated"
	// SourceFallback is the local responder after a backend failure.
	SourceFallback Source = "fallback"
)

// ResultMsg is the outcome of one dispatched request. Exactly one of Reply
// and Err is meaningful: Err non-nil means the request failed.
type ResultMsg struct {
	// Epoch is the session epoch the request was sent in.
	Epoch uint64

	// Input is the user text that triggered the request.
	Input string

	Source  Source
	Reply   model.Reply
	Err     error
	Started time.Time

	// Cause is the failure a fallback reply stands in for.
	Cause error
}

// Failed reports whether the request failed.
func (m ResultMsg) Failed() bool {
	return m.Err != nil
}
