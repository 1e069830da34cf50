// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jeranaias/uniassist-tui/internal/telemetry"
	"github.com/jeranaias/uniassist-tui/internal/util"
)

func (a *app) statsCmd() *cobra.Command {
	var (
		since  time.Duration
		recent int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded round trips",
		Long: `Summarize the round trips recorded in the local telemetry database:
totals per outcome (ok, fallback, simulated, discarded) and per agent.`,
		Example: `  uniassist stats
  uniassist stats --since 24h
  uniassist stats --recent 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStats(cmd, since, recent)
		},
	}
	cmd.Flags().DurationVar(&since, "since", 0, "only include round trips newer than this (e.g. 24h)")
	cmd.Flags().IntVar(&recent, "recent", 0, "also list the N most recent round trips")
	return cmd
}

func (a *app) runStats(cmd *cobra.Command, since time.Duration, recent int) error {
	path := a.cfg.TelemetryPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "No telemetry recorded yet (%s).\n", path)
		return nil
	}

	store, err := telemetry.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	var from time.Time
	if since > 0 {
		from = time.Now().Add(-since)
	}
	sum, err := store.Summary(cmd.Context(), from)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderSummary(out, sum)

	if recent > 0 {
		trips, err := store.Recent(cmd.Context(), recent)
		if err != nil {
			return err
		}
		renderRecent(out, trips)
	}
	return nil
}

var outcomeOrder = []telemetry.Outcome{
	telemetry.OutcomeOK,
	telemetry.OutcomeFallback,
	telemetry.OutcomeSimulated,
	telemetry.OutcomeDiscarded,
}

func renderSummary(w io.Writer, sum telemetry.Summary) {
	if sum.Total == 0 {
		fmt.Fprintln(w, "No round trips recorded in this period.")
		return
	}

	outcomes := table.NewWriter()
	outcomes.SetOutputMirror(w)
	outcomes.SetStyle(table.StyleLight)
	outcomes.SetTitle("Round trips")
	outcomes.AppendHeader(table.Row{"Outcome", "Count"})
	for _, o := range outcomeOrder {
		outcomes.AppendRow(table.Row{string(o), sum.ByOutcome[o]})
	}
	outcomes.AppendFooter(table.Row{"Total", sum.Total})
	outcomes.Render()

	fmt.Fprintf(w, "Average latency: %s\n\n", formatLatency(sum.AvgLatency))

	agents := table.NewWriter()
	agents.SetOutputMirror(w)
	agents.SetStyle(table.StyleLight)
	agents.SetTitle("Agents")
	agents.AppendHeader(table.Row{"Agent", "Replies", "Tool calls", "Avg latency"})
	for _, s := range sum.ByAgent {
		attrs := s.Agent.Attributes()
		agents.AppendRow(table.Row{attrs.Icon + " " + attrs.Label, s.Count, s.ToolCalls, formatLatency(s.AvgLatency)})
	}
	agents.Render()
}

const maxErrorWidth = 32

func renderRecent(w io.Writer, trips []telemetry.RoundTrip) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Recent")
	t.AppendHeader(table.Row{"Started", "Mode", "Outcome", "Agent", "Latency", "Error"})
	for _, rt := range trips {
		t.AppendRow(table.Row{
			rt.StartedAt.Format(time.DateTime),
			string(rt.Mode),
			string(rt.Outcome),
			rt.Agent.Label(),
			formatLatency(rt.Latency),
			util.TruncateRunes(rt.ErrorKind, maxErrorWidth),
		})
	}
	fmt.Fprintln(w)
	t.Render()
}

func formatLatency(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
