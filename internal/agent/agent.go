// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"strings"
)

// =============================================================================
// TAG TYPE
// =============================================================================

// Tag identifies which backend agent produced a reply.
type Tag uint8

const (
	// Default is the router. The zero value, so an unset Tag is Default.
	Default Tag = iota
	Test
	Read
	Write
	Sync
	Import
)

// tagNames is indexed by Tag.
var tagNames = [...]string{
	Default: "DEFAULT",
	Test:    "TEST",
	Read:    "READ",
	Write:   "WRITE",
	Sync:    "SYNC",
	Import:  "IMPORT",
}

// All returns every tag in display order.
func All() []Tag {
	return []Tag{Test, Read, Write, Sync, Import, Default}
}

// String returns the wire name of the tag ("READ", "SYNC", ...).
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return tagNames[Default]
}

// Valid reports whether t is one of the defined tags.
func (t Tag) Valid() bool {
	return int(t) < len(tagNames)
}

// Parse converts a wire name into a Tag. Matching ignores case and
// surrounding whitespace. Empty or unknown names yield Default.
func Parse(s string) Tag {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range tagNames {
		if name == s {
			return Tag(i)
		}
	}
	return Default
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to Default rather than failing.
func (t *Tag) UnmarshalText(b []byte) error {
	*t = Parse(string(b))
	return nil
}

// =============================================================================
// ATTRIBUTES
// =============================================================================

// Theme names a colour family. The UI layer maps themes to palettes.
type Theme string

const (
	ThemePurple  Theme = "purple"
	ThemeBlue    Theme = "blue"
	ThemeAmber   Theme = "amber"
	ThemeEmerald Theme = "emerald"
	ThemeRose    Theme = "rose"
	ThemeSlate   Theme = "slate"
)

// Attributes holds how an agent is presented.
type Attributes struct {
	Label string
	Icon  string
	Theme Theme
}

// Attributes returns the display attributes for t. Every Tag value,
// including out-of-range ones, has attributes.
func (t Tag) Attributes() Attributes {
	switch t {
	case Test:
		return Attributes{Label: "Test Agent", Icon: "⚗", Theme: ThemePurple}
	case Read:
		return Attributes{Label: "Read Agent", Icon: "⛁", Theme: ThemeBlue}
	case Write:
		return Attributes{Label: "Write Agent", Icon: "✎", Theme: ThemeAmber}
	case Sync:
		return Attributes{Label: "Sync Agent", Icon: "⟳", Theme: ThemeEmerald}
	case Import:
		return Attributes{Label: "Import Agent", Icon: "⇪", Theme: ThemeRose}
	default:
		return Attributes{Label: "Router", Icon: "◆", Theme: ThemeSlate}
	}
}

// Label is shorthand for t.Attributes().Label.
func (t Tag) Label() string {
	return t.Attributes().Label
}
