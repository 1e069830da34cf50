// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/uniassist-tui/internal/config"
	"github.com/jeranaias/uniassist-tui/internal/logging"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath  string
	apiURL      string
	simulated   bool
	theme       string
	logLevel    string
	noTelemetry bool
}

// app carries the state resolved before a command runs.
type app struct {
	flags globalFlags

	cfg     *config.Config
	cfgPath string

	// override re-applies command-line flags, e.g. to a reloaded config.
	override func(*config.Config)

	logger    zerolog.Logger
	logCloser io.Closer
}

// NewRootCommand builds the command tree. Running the root command starts
// the TUI.
func NewRootCommand() *cobra.Command {
	a := &app{logger: zerolog.Nop(), override: func(*config.Config) {}}

	root := &cobra.Command{
		Use:   "uniassist",
		Short: "Terminal client for the UniAssist scheduling assistant",
		Long: `uniassist talks to the university scheduling assistant backend.

Without a subcommand it starts the full-screen chat. When the backend cannot
be reached the session switches to demo mode and keeps answering with
simulated replies.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.NoArgs,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file path (default ~/.uniassist/config.toml)")
	pf.StringVar(&a.flags.apiURL, "api-url", "", "backend base URL (default "+config.DefaultBaseURL+")")
	pf.BoolVar(&a.flags.simulated, "simulated", false, "start in demo mode with simulated replies")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: auto, dark or light")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.noTelemetry, "no-telemetry", false, "do not record round trips")

	root.AddCommand(
		a.askCmd(),
		a.chatCmd(),
		a.statsCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads the config, applies flags and opens the log file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.resolveConfigPath(); err != nil {
		return err
	}

	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	a.override = func(c *config.Config) {
		if flags.Changed("api-url") {
			c.Backend.BaseURL = a.flags.apiURL
		}
		if flags.Changed("simulated") {
			c.Session.StartSimulated = a.flags.simulated
		}
		if flags.Changed("theme") {
			c.UI.Theme = a.flags.theme
		}
		if flags.Changed("log-level") {
			c.Log.Level = a.flags.logLevel
		}
		if flags.Changed("no-telemetry") {
			c.Telemetry.Enabled = !a.flags.noTelemetry
		}
	}
	a.override(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg

	logger, closer, err := logging.Setup(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return nil
	}
	a.logger = logger.With().Str("command", cmd.Name()).Logger()
	a.logCloser = closer

	a.logger.Info().
		Str("version", Version).
		Str("config", a.cfgPath).
		Str("backend", cfg.Backend.BaseURL).
		Bool("simulated", cfg.Session.StartSimulated).
		Msg("uniassist started")
	return nil
}

func (a *app) resolveConfigPath() error {
	if a.flags.configPath != "" {
		a.cfgPath = a.flags.configPath
		return nil
	}
	p, err := config.Path()
	if err != nil {
		return err
	}
	a.cfgPath = p
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.logCloser == nil {
		return nil
	}
	a.logger.Info().Msg("uniassist exiting")
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

// =============================================================================
// VERSION
// =============================================================================

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// The version needs neither config nor logs.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "uniassist version %s\n", Version)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Built:      %s\n", BuildDate)
		},
	}
}
