// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea model for the uniassist TUI.

The model is presentation only. Conversation state lives in a
dispatch.Dispatcher; the model forwards user actions to it, routes
dispatch.ResultMsg back to it, and drives a reveal.Renderer for the newest
bot reply.

# Layout

	header    title, current agent badge, Demo/Live badge
	viewport  dashboard (empty session) or the message log
	commands  command bar (non-empty session only)
	input     text input
	footer    system status and key hints

# Keys

	enter        send
	alt+1..4     quick action (dashboard) or command bar entry
	ctrl+n       new session
	ctrl+e       toggle demo mode
	ctrl+t       toggle dark/light
	pgup/pgdown  scroll
	ctrl+c       quit
*/
package chat
