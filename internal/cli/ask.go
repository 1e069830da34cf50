// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/uniassist-tui/internal/dispatch"
)

// errNothingToSend is returned by ask for a blank message.
var errNothingToSend = errors.New("nothing to send: message is empty")

func (a *app) askCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the reply",
		Long: `Send one message to the assistant and print the reply.

If the backend cannot be reached the error notice is printed to stderr and
the simulated reply to stdout, exactly as the chat would show them.`,
		Example: `  uniassist ask "Where is my CG 101 class?"
  uniassist ask --simulated "Run the full auto-sync now"
  uniassist ask --plain "Process the new request in the inbox" | tee reply.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd, strings.Join(args, " "), plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print only the reply text, without formatting")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, text string, plain bool) error {
	if strings.TrimSpace(text) == "" {
		return errNothingToSend
	}

	store := a.openTelemetry()
	if store != nil {
		defer store.Close()
	}
	d := a.newDispatcher(store)
	defer d.Close()

	p := a.newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), plain)

	var sp *spinner.Spinner
	if p.tty {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		sp.Suffix = " Processing..."
		sp.Start()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err := dispatch.Drain(ctx, d, d.Send(text))
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	log := d.State().Log
	if err := p.printMessages(ctx, log); err != nil {
		return err
	}
	if last, ok := d.State().Last(); ok && last.IsTyping {
		d.CompleteReveal(last.ID)
	}

	a.logger.Info().
		Int("messages", len(log)).
		Bool("simulated", d.State().Simulated).
		Str("agent", d.State().CurrentAgent.String()).
		Msg("ask finished")
	return nil
}
