// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes session transcripts to disk.
//
// Two formats are supported:
//   - Markdown (.md): YAML frontmatter, one heading per message, the tool
//     execution log as a bullet list
//   - JSON (.json): the full message log, suitable for re-processing
//
// # Usage
//
//	exp, err := export.ForFormat("md", nil)
//	path, err := export.WriteFile("", export.Transcript{Messages: log}, exp)
package export
