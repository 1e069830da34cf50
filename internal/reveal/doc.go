// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the typewriter effect used for bot replies.
//
// A Renderer appends one rune per tick to its visible text. It is driven by
// Bubble Tea: Start returns the first tick command, and Update consumes
// TickMsg values and schedules the next one. Every Start or Stop bumps a
// generation counter, so ticks scheduled for an earlier reveal are ignored
// when they arrive.
//
// Play performs the same reveal directly onto an io.Writer for line-mode
// output.
package reveal
