// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/uniassist-tui/internal/agent"
	"github.com/jeranaias/uniassist-tui/internal/model"
)

// JSONExporter writes the complete transcript; it has no options.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonTranscript struct {
	ExportedAt   time.Time       `json:"exported_at"`
	Simulated    bool            `json:"simulated"`
	CurrentAgent agent.Tag       `json:"current_agent"`
	Messages     []model.Message `json:"messages"`
}

// Export converts a transcript to indented JSON.
func (e *JSONExporter) Export(t Transcript) ([]byte, error) {
	if len(t.Messages) == 0 {
		return nil, ErrEmptyTranscript
	}
	data, err := json.MarshalIndent(jsonTranscript{
		ExportedAt:   t.ExportedAt,
		Simulated:    t.Simulated,
		CurrentAgent: t.Agent,
		Messages:     t.Messages,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
