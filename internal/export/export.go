// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/uniassist-tui/internal/agent"
	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/util"
)

// ErrEmptyTranscript is returned when there is nothing to export.
var ErrEmptyTranscript = errors.New("transcript has no messages")

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is a snapshot of one session.
type Transcript struct {
	Messages   []model.Message
	Simulated  bool
	Agent      agent.Tag
	ExportedAt time.Time
}

// Agents returns the agents that replied, in order of first reply.
func (t Transcript) Agents() []agent.Tag {
	seen := make(map[agent.Tag]bool)
	var tags []agent.Tag
	for _, m := range t.Messages {
		if !m.IsBot() || m.IsError || seen[m.Agent] {
			continue
		}
		seen[m.Agent] = true
		tags = append(tags, m.Agent)
	}
	return tags
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a transcript to one file format.
type Exporter interface {
	Export(t Transcript) ([]byte, error)

	// FileExtension includes the dot, e.g. ".md".
	FileExtension() string
}

// Options configures export behavior.
type Options struct {
	// IncludeTimestamps adds the per-message clock time.
	IncludeTimestamps bool

	// IncludeToolCalls lists the tools each reply executed.
	IncludeToolCalls bool
}

// DefaultOptions returns options with everything included.
func DefaultOptions() *Options {
	return &Options{
		IncludeTimestamps: true,
		IncludeToolCalls:  true,
	}
}

// ForFormat returns the exporter for a format name: "md", "markdown" or
// "json".
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (use md or json)", ErrUnknownFormat, name)
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// DefaultFilename names a transcript exported at now.
func DefaultFilename(now time.Time, ext string) string {
	return "uniassist_transcript_" + now.Format("20060102_150405") + ext
}

// WriteFile exports t to path with owner-only permissions. When path is a
// directory or empty, a timestamped file name is used inside it. The
// written path is returned.
func WriteFile(path string, t Transcript, exp Exporter) (string, error) {
	if len(t.Messages) == 0 {
		return "", ErrEmptyTranscript
	}
	if t.ExportedAt.IsZero() {
		t.ExportedAt = time.Now()
	}

	content, err := exp.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) || isDir(path) {
		path = filepath.Join(path, DefaultFilename(t.ExportedAt, exp.FileExtension()))
	}
	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}
