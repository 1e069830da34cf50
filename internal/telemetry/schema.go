// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

// SchemaVersion tracks the database schema version for migrations.
const SchemaVersion = 1

// Schema creates the round-trip log.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS round_trips (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at INTEGER NOT NULL, -- Unix milliseconds
    latency_ms INTEGER NOT NULL,
    mode TEXT NOT NULL,          -- live, simulated
    outcome TEXT NOT NULL,       -- ok, fallback, simulated, discarded
    agent TEXT NOT NULL,
    tool_calls INTEGER NOT NULL DEFAULT 0,
    error_kind TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_round_trips_started_at ON round_trips(started_at);
CREATE INDEX IF NOT EXISTS idx_round_trips_agent ON round_trips(agent);
`
