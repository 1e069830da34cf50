// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Play writes text to w one rune per interval. It returns ctx.Err() if the
// context ends first; the runes written so far stay written.
func Play(ctx context.Context, w io.Writer, text string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, ch := range runes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if _, err := io.WriteString(w, string(ch)); err != nil {
			return fmt.Errorf("write reveal: %w", err)
		}
	}
	return nil
}
