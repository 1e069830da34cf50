// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds the small helpers shared by uniassist packages.
//
//   - AtomicWriteFile: crash-safe writes for the config file
//   - TruncateRunes: UTF-8 safe truncation for log fields and table cells
package util
