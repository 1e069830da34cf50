// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a transcript as Markdown with YAML frontmatter.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

type frontmatter struct {
	Title     string    `yaml:"title"`
	Exported  time.Time `yaml:"exported"`
	Mode      string    `yaml:"mode"`
	Messages  int       `yaml:"messages"`
	Agents    []string  `yaml:"agents,omitempty"`
	Generator string    `yaml:"generator"`
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t Transcript) ([]byte, error) {
	if len(t.Messages) == 0 {
		return nil, ErrEmptyTranscript
	}

	fm := frontmatter{
		Title:     "UniAssist session",
		Exported:  t.ExportedAt.Truncate(time.Second),
		Mode:      modeName(t.Simulated),
		Messages:  len(t.Messages),
		Generator: "uniassist",
	}
	for _, tag := range t.Agents() {
		fm.Agents = append(fm.Agents, tag.Label())
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(header)
	sb.WriteString("---\n\n")
	sb.WriteString("# UniAssist session\n\n")

	for i, msg := range t.Messages {
		label := msg.Sender.DisplayName()
		switch {
		case msg.IsError:
			label = "Notice"
		case msg.IsBot():
			label = msg.Agent.Label()
		}

		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, msg.Timestamp)
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		if msg.IsError {
			sb.WriteString("> " + strings.TrimSpace(msg.Text) + "\n\n")
		} else {
			sb.WriteString(strings.TrimSpace(msg.Text) + "\n\n")
		}

		if e.options.IncludeToolCalls && msg.IsBot() && len(msg.ToolCalls) > 0 {
			for _, tool := range msg.ToolCalls {
				fmt.Fprintf(&sb, "- [OK] Executed: `%s`\n", tool)
			}
			sb.WriteString("\n")
		}

		if i < len(t.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

func modeName(simulated bool) string {
	if simulated {
		return "simulated"
	}
	return "live"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
