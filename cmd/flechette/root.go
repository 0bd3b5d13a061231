// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for flechette.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flechette-insolente/flechette/internal/logging"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree bound to app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flechette",
		Short: "Compile Sass with the dart-sass executable",
		Long: TitleStyle.Render("flechette") + SubtitleStyle.Render(" - Compile Sass with the dart-sass executable") + `

flechette validates compile options, renders them into a dart-sass
command line and runs the executable bundled for your platform, or the
one named in the configuration.

` + SubtitleStyle.Render("Examples:") + `
  flechette compile main.scss main.css   Compile one stylesheet
  flechette version --check              Check the dart-sass installation
  flechette config show                  Show current configuration`,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/flechette/config.cue)")
	rootCmd.PersistentFlags().IntVarP(&app.flags.verbosity, "verbosity", "v", int(logging.DefaultVerbosity),
		"an integer between 0 (silent) and 5 (debug)")

	rootCmd.AddCommand(newCompileCommand(app))
	rootCmd.AddCommand(newVersionCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// withSession opens a session for cmd, runs fn and closes the session.
func (a *App) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx, s, err := a.openSession(cmd.Context(), cmd.Flags().Changed("verbosity"))
	if err != nil {
		return a.fail(cmd, err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			log.FromContext(ctx).Warn("failed to close log file", "error", closeErr)
		}
	}()
	return fn(ctx, s)
}

// Execute runs the CLI and exits with its status. It is called by main.main().
func Execute() {
	os.Exit(Run())
}

// Run runs the CLI against os.Args and returns the process exit code.
func Run() int {
	return run(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

func run(ctx context.Context, app *App, args []string) int {
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return int(exitFailure)
	}
	return 0
}
