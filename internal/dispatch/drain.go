// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Drain runs cmd outside a Bubble Tea program. Every message produced is
// fed to d.Update and the resulting commands are run in turn, until none
// are left or ctx ends. Batches are flattened.
//
// If ctx ends while a command is running, Drain abandons the outstanding
// request and returns ctx.Err() at once. The command finishes in the
// background and its message is dropped; the session accepts new sends.
func Drain(ctx context.Context, d *Dispatcher, cmd tea.Cmd) error {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg, err := runCmd(ctx, next)
		if err != nil {
			d.Abandon()
			return err
		}

		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, d.Update(msg))
		}
	}
	return nil
}

func runCmd(ctx context.Context, cmd tea.Cmd) (tea.Msg, error) {
	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg := <-done:
		return msg, nil
	}
}
