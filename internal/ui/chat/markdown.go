// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders settled bot replies. Output is cached per message id and
// dropped whenever the width or style changes.
type markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown() *markdown {
	return &markdown{cache: make(map[string]string)}
}

// render returns text as styled markdown, or text unchanged if glamour
// fails.
func (md *markdown) render(id, text string, width int, style string) string {
	if width < 20 {
		width = 20
	}
	if md.renderer == nil || width != md.width || style != md.style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		md.renderer = r
		md.width = width
		md.style = style
		md.cache = make(map[string]string)
	}

	if out, ok := md.cache[id]; ok {
		return out
	}
	out, err := md.renderer.Render(text)
	if err != nil {
		return text
	}
	out = strings.Trim(out, "\n")
	md.cache[id] = out
	return out
}

// reset drops the cache, e.g. when a new session starts.
func (md *markdown) reset() {
	md.cache = make(map[string]string)
}
