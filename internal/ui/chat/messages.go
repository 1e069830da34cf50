// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/uniassist-tui/internal/config"

// ConfigReloadedMsg carries a config re-read after the file changed on
// disk. Err is set when the new file could not be loaded; the running
// settings are kept in that case.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
