// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch is the conversation controller.
//
// A Dispatcher owns the session state and turns user actions into state
// transitions and Bubble Tea commands. Network calls and artificial delays
// run inside commands; their outcome comes back as a ResultMsg that the
// caller feeds to Update. Only the goroutine that calls Send and Update may
// touch the Dispatcher, which in a Bubble Tea program is the update loop.
//
// # Flow
//
//	cmd := d.Send("Run sync")   // appends the user message, starts loading
//	msg := cmd()                // backend call or simulated delay
//	next := d.Update(msg)       // appends the reply, or the error notice plus
//	                            // a fallback command after a failure
//
// Once a request fails the session switches to simulated mode and stays
// there until the user toggles it back.
package dispatch
