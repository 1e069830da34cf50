// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/uniassist-tui/internal/agent"
	"github.com/jeranaias/uniassist-tui/internal/model"
)

// rule maps a set of keywords to a canned reply. The first rule with any
// matching keyword wins.
type rule struct {
	keywords []string
	agent    agent.Tag
	response string
	tools    []string
}

// rules are evaluated in order. Priority matters: "test the sync" is a
// TEST request.
var rules = []rule{
	{
		keywords: []string{"test"},
		agent:    agent.Test,
		response: "Initiating Selenium export sequence...\nSUCCESS.",
		tools:    []string{"Export_Timetable"},
	},
	{
		keywords: []string{"sync"},
		agent:    agent.Sync,
		response: "Starting full synchronization sequence...",
		tools:    []string{"Refresh_RAG_Database"},
	},
	{
		keywords: []string{"import"},
		agent:    agent.Import,
		response: "Importing 'unitime_batch.xml' to database...",
		tools:    []string{"Import_File_to_Unitime"},
	},
	{
		keywords: []string{"process", "email"},
		agent:    agent.Write,
		response: "Scanning inbox... Found 1 request. Added to batch.",
		tools:    []string{"Read_Email", "Add_Offering_to_Batch_File"},
	},
}

// fallbackRule answers everything else as a schedule lookup.
var fallbackRule = rule{
	agent:    agent.Read,
	response: "According to the current schedule, CG 101 meets in Room 304.",
	tools:    []string{"Query_Student_Timetable"},
}

// Respond returns the simulated reply for input. It is pure: the same input
// always yields an equal reply, and each call returns a fresh ToolCalls slice.
func Respond(input string) model.Reply {
	lower := cases.Lower(language.Und).String(input)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply()
			}
		}
	}
	return fallbackRule.reply()
}

func (r rule) reply() model.Reply {
	tools := make([]string, len(r.tools))
	copy(tools, r.tools)
	return model.Reply{
		Response:  r.response,
		Agent:     r.agent.String(),
		ToolCalls: tools,
	}
}
