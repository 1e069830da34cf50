// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/uniassist-tui/internal/config"
	"github.com/jeranaias/uniassist-tui/internal/dispatch"
	"github.com/jeranaias/uniassist-tui/internal/export"
	"github.com/jeranaias/uniassist-tui/internal/ui/chat"
	"github.com/jeranaias/uniassist-tui/internal/ui/styles"
)

const replPrompt = "uniassist> "

// errUnknownCommand is returned for a slash command the REPL does not know.
var errUnknownCommand = errors.New("unknown command")

func (a *app) chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Start an interactive chat without the full-screen interface.

Commands:
  /new     start a new session
  /demo    toggle demo mode
  /status  show mode, current agent and message count
  /export  write the transcript: /export [file.md|file.json|dir]
  /help    show this help
  /quit    exit (also Ctrl+C or Ctrl+D)`,
		Args: cobra.NoArgs,
		RunE: a.runChat,
	}
}

// repl is one line-mode session.
type repl struct {
	d       *dispatch.Dispatcher
	printer *printer
	errOut  io.Writer
}

func (a *app) runChat(cmd *cobra.Command, _ []string) error {
	store := a.openTelemetry()
	if store != nil {
		defer store.Close()
	}
	d := a.newDispatcher(store)
	defer d.Close()

	r := &repl{
		d:       d,
		printer: a.newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), false),
		errOut:  cmd.ErrOrStderr(),
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := replHistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyFile)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.printer.theme.HeaderTitle.Render("UniAssist")+" "+r.printer.theme.RenderModeBadge(d.State().Simulated))
	fmt.Fprintln(out, r.printer.theme.ShortcutDesc.Render("Type a message, or /help for commands."))

	for {
		input, err := line.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		quit, err := r.handle(cmd.Context(), input)
		if err != nil {
			fmt.Fprintln(r.errOut, styles.RenderError(err.Error()))
		}
		if quit {
			return nil
		}
	}
}

// handle runs one line of input. It reports true when the session should
// end.
func (r *repl) handle(ctx context.Context, input string) (bool, error) {
	if !strings.HasPrefix(input, "/") {
		return false, r.send(ctx, input)
	}

	out := r.printer.out
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/new":
		r.d.Reset()
		fmt.Fprintln(out, styles.RenderSuccess("New session started."))

	case "/demo":
		r.d.ToggleSimulated()
		if r.d.State().Simulated {
			fmt.Fprintln(out, styles.RenderInfo("Demo mode on: replies are simulated."))
		} else {
			fmt.Fprintln(out, styles.RenderInfo("Demo mode off: using the live backend."))
		}

	case "/status":
		st := r.d.State()
		fmt.Fprintln(out, chat.StatusLine(st.Simulated))
		fmt.Fprintf(out, "  Agent:    %s\n", st.CurrentAgent.Label())
		fmt.Fprintf(out, "  Messages: %d\n", len(st.Log))

	case "/export":
		var target string
		if len(fields) > 1 {
			target = fields[1]
		}
		path, err := r.export(target)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, styles.RenderSuccess("Transcript written to "+path))

	case "/help", "/?":
		fmt.Fprintln(out, "/new  /demo  /status  /export [path]  /help  /quit")

	default:
		return false, fmt.Errorf("%w: %s", errUnknownCommand, fields[0])
	}
	return false, nil
}

// send dispatches text and prints the messages it produced.
func (r *repl) send(ctx context.Context, text string) error {
	before := len(r.d.State().Log)
	cmd := r.d.Send(text)
	if cmd == nil {
		return nil
	}

	// Ctrl+C while waiting cancels the request, not the session.
	reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var sp *spinner.Spinner
	if r.printer.tty {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.errOut))
		sp.Suffix = " Processing..."
		sp.Start()
	}
	err := dispatch.Drain(reqCtx, r.d, cmd)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.Canceled) {
			fmt.Fprintln(r.printer.out, styles.RenderInfo("Request cancelled."))
			return nil
		}
		return err
	}

	log := r.d.State().Log
	if before > len(log) {
		before = 0
	}
	if err := r.printer.printMessages(ctx, log[before:]); err != nil {
		return err
	}
	if last, ok := r.d.State().Last(); ok && last.IsTyping {
		r.d.CompleteReveal(last.ID)
	}
	return nil
}

// export writes the session transcript. The format follows the file
// extension; anything but .json is Markdown.
func (r *repl) export(target string) (string, error) {
	exp, err := export.ForFormat(filepath.Ext(target), nil)
	if err != nil {
		exp = export.NewMarkdownExporter(nil)
	}
	st := r.d.State()
	return export.WriteFile(target, export.Transcript{
		Messages:  st.Log,
		Simulated: st.Simulated,
		Agent:     st.CurrentAgent,
	}, exp)
}

func replHistoryPath() string {
	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "chat_history")
}

// saveHistory persists the REPL history with owner-only permissions.
func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
