// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent defines the closed set of backend agent tags and their
// display attributes.
//
// Every reply from the assistant is attributed to one of six agents. Tags
// arrive as free-form strings from the backend; Parse normalizes them and
// maps anything unrecognized to Default, so the rest of the program only
// ever sees a valid Tag.
//
// # Usage
//
//	tag := agent.Parse(reply.Agent)
//	attrs := tag.Attributes()
//	fmt.Printf("%s %s\n", attrs.Icon, attrs.Label)
package agent
