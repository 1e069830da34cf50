// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the uniassist command line.

	uniassist                 start the TUI
	uniassist ask "<text>"    send one message and print the reply
	uniassist chat            line-mode REPL
	uniassist stats           summarize recorded round trips
	uniassist config show     print the effective config
	uniassist config path     print the config file location
	uniassist config init     write a default config file
	uniassist version         print version information

Global flags override the config file, which overrides built-in defaults:

	--config PATH      config file (default ~/.uniassist/config.toml)
	--api-url URL      backend base URL
	--simulated        start in demo mode
	--theme NAME       auto, dark or light
	--log-level LEVEL  zerolog level
	--no-telemetry     do not record round trips

Logs are written to a file (log.file, default ~/.uniassist/logs/uniassist.log)
so they never interleave with terminal output.
*/
package cli
