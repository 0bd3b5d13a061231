// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/flechette-insolente/flechette/internal/executor"
	"github.com/flechette-insolente/flechette/internal/issue"
	"github.com/flechette-insolente/flechette/pkg/arguments"
)

// linkedError returns an actionable error pointing at the given issue.
func linkedError(t *testing.T, id issue.Id) error {
	t.Helper()
	err := issue.NewErrorContext().
		WithOperation("run sass").
		WithResource("/opt/sass/sass").
		WithIssue(id).
		BuildError()
	if err == nil {
		t.Fatalf("BuildError() returned nil for issue %d", id)
	}
	return err
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want executor.ExitCode
	}{
		{"sass exit code", executor.NewExitedError(65, []string{"sass"}, nil, nil), 65},
		{"killed by signal", executor.NewExitedError(-1, []string{"sass"}, nil, nil), exitFailure},
		{"timed out", executor.NewTimedOutError(executor.DefaultTimeout, []string{"sass"}, nil, nil), exitTimedOut},
		{"invalid argument", fmt.Errorf("invalid compile arguments: %w", &arguments.SourceNotFoundError{Path: "x"}), executor.ExitCodeUsage},
		{"unknown parameter", &arguments.UnknownParameterError{Name: "nope"}, executor.ExitCodeUsage},
		{"executable not found", linkedError(t, issue.ExecutableNotFoundId), exitNotExecutable},
		{"unsupported platform", linkedError(t, issue.UnsupportedPlatformId), exitNotExecutable},
		{"config", linkedError(t, issue.ConfigLoadFailedId), exitConfig},
		{"plain", errors.New("boom"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(&ExitError{Code: 0, Err: tt.err}); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIssueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"exited", executor.NewExitedError(65, []string{"sass"}, nil, nil), issue.CompilationFailedId},
		{"timed out", executor.NewTimedOutError(executor.DefaultTimeout, []string{"sass"}, nil, nil), issue.CommandTimeoutId},
		{"arguments", &arguments.InvalidChoiceError{Label: "output style", Value: "nested"}, issue.InvalidArgumentsId},
		{"linked", linkedError(t, issue.ConfigLoadFailedId), issue.ConfigLoadFailedId},
		{"unlinked", errors.New("boom"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := issueFor(tt.err); got != tt.want {
				t.Errorf("issueFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderFailure(t *testing.T) {
	t.Parallel()

	t.Run("actionable error with suggestions", func(t *testing.T) {
		t.Parallel()

		err := issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource("config.toml").
			WithSuggestion("Fix the file").
			Wrap(errors.New("unexpected token")).
			BuildError()

		var buf bytes.Buffer
		renderFailure(&buf, err, true)

		for _, want := range []string{"failed to load configuration: config.toml: unexpected token", "• Fix the file", "Error chain:"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("output missing %q:\n%s", want, buf.String())
			}
		}
	})

	t.Run("execution error shows captured output", func(t *testing.T) {
		t.Parallel()

		out := "Error: Undefined variable."
		var buf bytes.Buffer
		renderFailure(&buf, executor.NewExitedError(65, []string{"sass", "main.scss"}, &out, nil), false)

		got := buf.String()
		for _, want := range []string{"command failed with exit code: 65", "sass main.scss\n\nError: Undefined variable.", "Sass reported an error"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		details := strings.Index(got, "Error: Undefined variable.")
		short := strings.Index(got, "command failed with exit code: 65")
		if details < 0 || short < 0 || details > short {
			t.Errorf("captured output should come before the short message:\n%s", got)
		}
	})

	t.Run("plain error has no guide", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderFailure(&buf, errors.New("boom"), false)
		if strings.Contains(buf.String(), "See also") {
			t.Errorf("plain error rendered a guide:\n%s", buf.String())
		}
	})
}

func TestGuideStyle(t *testing.T) {
	t.Parallel()

	if got := guideStyle(&bytes.Buffer{}); got != "notty" {
		t.Errorf("guideStyle(buffer) = %q, want notty", got)
	}
}
