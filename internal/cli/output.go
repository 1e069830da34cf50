// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/uniassist-tui/internal/model"
	"github.com/jeranaias/uniassist-tui/internal/reveal"
	"github.com/jeranaias/uniassist-tui/internal/ui/styles"
)

// printer writes bot messages to a terminal or a pipe.
type printer struct {
	out    io.Writer
	errOut io.Writer
	theme  *styles.Theme

	// tty enables the typing effect and markdown.
	tty bool
	// plain prints only the reply text.
	plain bool

	reveal    bool
	interval  time.Duration
	markdown  bool
	showTools bool
}

func (a *app) newPrinter(out, errOut io.Writer, plain bool) *printer {
	return &printer{
		out:       out,
		errOut:    errOut,
		theme:     a.theme(),
		tty:       !plain && isTerminal(out),
		plain:     plain,
		reveal:    a.cfg.Reveal.Enabled,
		interval:  a.cfg.RevealInterval(),
		markdown:  a.cfg.UI.Markdown,
		showTools: a.cfg.UI.ShowToolCalls,
	}
}

// printMessages writes every message in msgs. User messages are skipped;
// the user typed them.
func (p *printer) printMessages(ctx context.Context, msgs []model.Message) error {
	for _, msg := range msgs {
		switch {
		case msg.IsUser():
			continue
		case msg.IsError:
			fmt.Fprintln(p.errOut, styles.RenderWarning(msg.Text))
		default:
			if err := p.printReply(ctx, msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *printer) printReply(ctx context.Context, msg model.Message) error {
	if p.plain {
		_, err := fmt.Fprintln(p.out, msg.Text)
		return err
	}

	fmt.Fprintln(p.out, p.theme.RenderAgentBadge(msg.Agent)+" "+p.theme.Timestamp.Render(msg.Timestamp))

	switch {
	case p.tty && p.reveal:
		if err := reveal.Play(ctx, p.out, msg.Text, p.interval); err != nil {
			return err
		}
		fmt.Fprintln(p.out)
	case p.tty && p.markdown:
		fmt.Fprintln(p.out, renderMarkdown(msg.Text, terminalWidth(p.out), p.theme.GlamourStyle()))
	default:
		fmt.Fprintln(p.out, msg.Text)
	}

	if p.showTools {
		for _, tool := range msg.ToolCalls {
			fmt.Fprintln(p.out, p.theme.ToolLogItem.Render("  "+styles.StatusIndicators.Success+" Executed: "+tool))
		}
	}
	return nil
}

// renderMarkdown renders content for terminal display, or returns it
// unchanged if glamour fails.
func renderMarkdown(content string, width int, style string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
