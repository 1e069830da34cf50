// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry records request round trips in a local SQLite database.
//
// One row is written per dispatched message: when it started, how long it
// took, whether it went to the live backend or was simulated, how it ended,
// which agent answered and how many tools ran.
//
// # Key Types
//
//   - Store: SQLite-backed round-trip log
//   - RoundTrip: one recorded exchange
//   - Summary: aggregated counts and latencies per agent
//
// # Usage
//
//	store, err := telemetry.Open(telemetry.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	summary, err := store.Summary(ctx, time.Now().AddDate(0, 0, -7))
//
// # Privacy
//
// Telemetry is local-only and never transmitted. Message text is never
// stored, only metadata.
package telemetry
