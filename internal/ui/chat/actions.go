// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// Action is a canned prompt bound to alt+1..alt+4.
type Action struct {
	Label  string
	Prompt string
}

// QuickActions are offered on the empty dashboard.
var QuickActions = [4]Action{
	{Label: "Check Schedule", Prompt: "Where is my CG 101 class?"},
	{Label: "Process Inbox", Prompt: "Process the new request in the inbox"},
	{Label: "Import Batch", Prompt: "Import the batch file"},
	{Label: "Sync Database", Prompt: "Run the full auto-sync now"},
}

// CommandBar replaces the quick actions once the conversation has started.
var CommandBar = [4]Action{
	{Label: "Inbox", Prompt: "Process inbox"},
	{Label: "Import", Prompt: "Import batch file"},
	{Label: "Sync", Prompt: "Run sync"},
	{Label: "Test", Prompt: "Test export"},
}

// actionFor returns the action at index i for the current screen.
func actionFor(empty bool, i int) Action {
	if empty {
		return QuickActions[i]
	}
	return CommandBar[i]
}
