// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline provides the simulated (demo mode) side of the client.
//
// When the backend is unreachable, or the user has switched to demo mode,
// replies come from Respond, a deterministic keyword classifier that mimics
// the shape of real backend results. The package also validates backend
// URLs before any request is made.
//
// # Key Functions
//
//   - Respond: canned reply for an input, chosen by keyword priority
//   - ValidateBaseURL: only http and https URLs with a host are accepted
//   - IsLocalhost: loopback detection for host strings
//
// # Usage
//
//	reply := offline.Respond("Run the full auto-sync now")
//	// reply.Agent == "SYNC"
package offline
