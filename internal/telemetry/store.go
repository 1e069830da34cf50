// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/uniassist-tui/internal/agent"
)

// =============================================================================
// TYPES
// =============================================================================

// Mode is where a request was answered.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeSimulated Mode = "simulated"
)

// Outcome is how a round trip ended.
type Outcome string

const (
	// OutcomeOK is a reply from the live backend.
	OutcomeOK Outcome = "ok"
	// OutcomeFallback is a simulated reply after a backend failure.
	OutcomeFallback Outcome = "fallback"
	// OutcomeSimulated is a reply produced in demo mode.
	OutcomeSimulated Outcome = "simulated"
	// OutcomeDiscarded is a result that arrived after the session was reset.
	OutcomeDiscarded Outcome = "discarded"
)

// RoundTrip is one recorded exchange.
type RoundTrip struct {
	StartedAt time.Time
	Latency   time.Duration
	Mode      Mode
	Outcome   Outcome
	Agent     agent.Tag
	ToolCalls int
	ErrorKind string
}

// AgentStats aggregates round trips answered by one agent.
type AgentStats struct {
	Agent      agent.Tag
	Count      int
	ToolCalls  int
	AvgLatency time.Duration
}

// Summary aggregates round trips over a period.
type Summary struct {
	Since      time.Time
	Total      int
	ByOutcome  map[Outcome]int
	ByAgent    []AgentStats
	AvgLatency time.Duration
}

// ErrClosed is returned when the store is used after Close.
var ErrClosed = errors.New("telemetry store closed")

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite round-trip log. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.uniassist/telemetry.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".uniassist", "telemetry.db")
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO metadata(key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(SchemaVersion),
	)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record inserts one round trip.
func (s *Store) Record(ctx context.Context, rt RoundTrip) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO round_trips (started_at, latency_ms, mode, outcome, agent, tool_calls, error_kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rt.StartedAt.UnixMilli(),
		rt.Latency.Milliseconds(),
		string(rt.Mode),
		string(rt.Outcome),
		rt.Agent.String(),
		rt.ToolCalls,
		rt.ErrorKind,
	)
	if err != nil {
		return fmt.Errorf("failed to record round trip: %w", err)
	}
	return nil
}

// Recent returns up to limit round trips, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]RoundTrip, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT started_at, latency_ms, mode, outcome, agent, tool_calls, error_kind
		 FROM round_trips ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query round trips: %w", err)
	}
	defer rows.Close()

	var out []RoundTrip
	for rows.Next() {
		var (
			startedMs, latencyMs int64
			mode, outcome, tag   string
			rt                   RoundTrip
		)
		if err := rows.Scan(&startedMs, &latencyMs, &mode, &outcome, &tag, &rt.ToolCalls, &rt.ErrorKind); err != nil {
			return nil, fmt.Errorf("failed to scan round trip: %w", err)
		}
		rt.StartedAt = time.UnixMilli(startedMs)
		rt.Latency = time.Duration(latencyMs) * time.Millisecond
		rt.Mode = Mode(mode)
		rt.Outcome = Outcome(outcome)
		rt.Agent = agent.Parse(tag)
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Summary aggregates every round trip started at or after since.
func (s *Store) Summary(ctx context.Context, since time.Time) (Summary, error) {
	sum := Summary{Since: since, ByOutcome: make(map[Outcome]int)}
	if s.db == nil {
		return sum, ErrClosed
	}
	sinceMs := since.UnixMilli()

	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(latency_ms) FROM round_trips WHERE started_at >= ?`, sinceMs,
	).Scan(&sum.Total, &avg)
	if err != nil {
		return sum, fmt.Errorf("failed to query totals: %w", err)
	}
	sum.AvgLatency = msToDuration(avg)

	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome, COUNT(*) FROM round_trips WHERE started_at >= ? GROUP BY outcome`, sinceMs)
	if err != nil {
		return sum, fmt.Errorf("failed to query outcomes: %w", err)
	}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			rows.Close()
			return sum, fmt.Errorf("failed to scan outcome: %w", err)
		}
		sum.ByOutcome[Outcome(outcome)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return sum, err
	}

	// Discarded results never reached an agent.
	rows, err = s.db.QueryContext(ctx,
		`SELECT agent, COUNT(*), SUM(tool_calls), AVG(latency_ms)
		 FROM round_trips WHERE started_at >= ? AND outcome != ?
		 GROUP BY agent ORDER BY COUNT(*) DESC, agent ASC`, sinceMs, string(OutcomeDiscarded))
	if err != nil {
		return sum, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			tag   string
			stats AgentStats
			avg   sql.NullFloat64
		)
		if err := rows.Scan(&tag, &stats.Count, &stats.ToolCalls, &avg); err != nil {
			return sum, fmt.Errorf("failed to scan agent stats: %w", err)
		}
		stats.Agent = agent.Parse(tag)
		stats.AvgLatency = msToDuration(avg)
		sum.ByAgent = append(sum.ByAgent, stats)
	}
	return sum, rows.Err()
}

func msToDuration(ms sql.NullFloat64) time.Duration {
	if !ms.Valid {
		return 0
	}
	return time.Duration(ms.Float64 * float64(time.Millisecond))
}
