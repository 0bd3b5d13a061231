// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flechette-insolente/flechette/internal/executor"
)

// unknownVersion is shown when the executable could not report its version.
const unknownVersion = "unknown due to error"

func newVersionCommand(app *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print out version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s, version %s\n", TitleStyle.Render("flechette"), getVersionString())
			if !check {
				return nil
			}
			return app.withSession(cmd, func(ctx context.Context, s *session) error {
				return runVersionCheck(ctx, cmd, app, s)
			})
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "include platform and dart-sass information")

	return cmd
}

// runVersionCheck reports the platform and the dart-sass executable. A
// failing executable is reported but does not fail the command.
func runVersionCheck(ctx context.Context, cmd *cobra.Command, app *App, s *session) error {
	out := cmd.OutOrStdout()

	version := unknownVersion
	comp, runErr := app.compiler(s)
	if runErr == nil {
		if v, err := comp.Version(ctx); err != nil {
			runErr = err
		} else {
			version = v
		}
	}

	fmt.Fprintf(out, "- %s: %s\n", CmdStyle.Render("Platform"), SuccessStyle.Render(s.build.Code()))
	fmt.Fprintf(out, "- %s: %s\n", CmdStyle.Render("dart-sass executable"), SuccessStyle.Render(s.cfg.ExecutablePath(s.build)))
	fmt.Fprintf(out, "- %s: %s\n", CmdStyle.Render("dart-sass version"), SuccessStyle.Render(version))

	if runErr == nil {
		return nil
	}
	var execErr *executor.ExecutionError
	if errors.As(runErr, &execErr) {
		fmt.Fprintln(out, execErr.Details())
		fmt.Fprintln(out, execErr.Error())
		return nil
	}
	renderFailure(cmd.ErrOrStderr(), runErr, app.verbose)
	return nil
}
