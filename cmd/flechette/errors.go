// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flechette-insolente/flechette/internal/executor"
	"github.com/flechette-insolente/flechette/internal/issue"
	"github.com/flechette-insolente/flechette/pkg/arguments"
)

// Exit codes of failures that did not come from dart-sass itself.
const (
	exitFailure       executor.ExitCode = 1
	exitConfig        executor.ExitCode = 78
	exitTimedOut      executor.ExitCode = 124
	exitNotExecutable executor.ExitCode = 127
)

// exitCodeFor maps a command failure to the process exit code. A dart-sass
// exit status is passed through unchanged.
func exitCodeFor(err error) executor.ExitCode {
	var execErr *executor.ExecutionError
	if errors.As(err, &execErr) {
		code, exited := execErr.ReturnCode()
		switch {
		case !exited:
			return exitTimedOut
		case code > 0:
			return code
		default:
			return exitFailure
		}
	}

	if errors.Is(err, arguments.ErrValidation) || errors.Is(err, arguments.ErrConfiguration) {
		return executor.ExitCodeUsage
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		switch ae.Issue {
		case issue.ExecutableNotFoundId, issue.UnsupportedPlatformId:
			return exitNotExecutable
		case issue.ConfigLoadFailedId:
			return exitConfig
		case issue.InvalidArgumentsId:
			return executor.ExitCodeUsage
		}
	}
	return exitFailure
}

// issueFor returns the catalog entry explaining err, zero when none applies.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	var execErr *executor.ExecutionError
	if errors.As(err, &execErr) {
		if execErr.Variant() == executor.VariantTimedOut {
			return issue.CommandTimeoutId
		}
		return issue.CompilationFailedId
	}

	if errors.Is(err, arguments.ErrValidation) || errors.Is(err, arguments.ErrConfiguration) {
		return issue.InvalidArgumentsId
	}
	return 0
}

// renderFailure writes err and the matching troubleshooting guide to w. A
// dart-sass failure prints its command line and output before the short
// message.
func renderFailure(w io.Writer, err error, verbose bool) {
	var ae *issue.ActionableError
	var execErr *executor.ExecutionError
	switch {
	case errors.As(err, &ae):
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗"), ae.Format(verbose))
	case errors.As(err, &execErr):
		fmt.Fprintln(w, execErr.Details())
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗"), execErr.Error())
	default:
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗"), err)
	}

	id := issueFor(err)
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(guideStyle(w))
	if renderErr != nil {
		log.Warn("failed to render issue catalog entry", "issue", id, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// guideStyle picks the glamour style for w: colors on a terminal, plain
// text otherwise.
func guideStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}

// fail renders err on the command's stderr and converts it to an ExitError
// so Execute can set the process exit code.
func (a *App) fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	renderFailure(cmd.ErrOrStderr(), err, a.verbose)
	return &ExitError{Code: exitCodeFor(err), Err: err}
}
