// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/flechette-insolente/flechette/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds a run when no timeout is configured.
	DefaultTimeout = 30 * time.Second
	// DefaultWaitDelay bounds how long output pipes may stay open after the
	// process was killed, e.g. by a grandchild inheriting them.
	DefaultWaitDelay = 2 * time.Second
)

type (
	// Executor runs one executable. Its configuration is fixed at
	// construction, so one Executor may be shared by concurrent callers.
	Executor struct {
		path           string
		timeout        time.Duration
		waitDelay      time.Duration
		separateStderr bool
		logger         *log.Logger
	}

	// Option configures an Executor.
	Option func(*Executor)

	// Result is the outcome of a clean exit.
	Result struct {
		// Stdout is the decoded captured output.
		Stdout string
		// ExitCode is always zero.
		ExitCode ExitCode
	}
)

// WithTimeout sets the wall-clock budget of every run. Non-positive values
// keep the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithWaitDelay sets how long to wait for output pipes after a kill.
func WithWaitDelay(d time.Duration) Option {
	return func(e *Executor) { e.waitDelay = d }
}

// WithSeparateStderr captures stderr apart instead of merging it into stdout.
func WithSeparateStderr() Option {
	return func(e *Executor) { e.separateStderr = true }
}

// WithLogger sets the logger. Without one, the logger found in the run
// context is used.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// New creates an Executor for the executable at path. The path is used as
// given: resolving it for the current platform is the caller's concern.
func New(path string, opts ...Option) *Executor {
	e := &Executor{
		path:      path,
		timeout:   DefaultTimeout,
		waitDelay: DefaultWaitDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path returns the executable path.
func (e *Executor) Path() string { return e.path }

// Timeout returns the configured wall-clock budget.
func (e *Executor) Timeout() time.Duration { return e.timeout }

// Trimmed returns the output without surrounding whitespace.
func (r *Result) Trimmed() string { return strings.TrimSpace(r.Stdout) }

// Run starts exactly one process with args and blocks until it exits or
// the timeout kills it. Cancelling ctx does not abort the run; only the
// timeout does.
//
// A non-zero exit or a timeout returns an *ExecutionError. A process that
// cannot be started returns an *issue.ActionableError wrapping the cause.
func (e *Executor) Run(ctx context.Context, args ...string) (*Result, error) {
	cmdline := append([]string{e.path}, args...)
	logger := e.logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}
	logger = logger.With("run", uuid.NewString())

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.path, args...)
	cmd.WaitDelay = e.waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if e.separateStderr {
		cmd.Stderr = &stderr
	} else {
		cmd.Stderr = &stdout
	}

	logger.Debug("starting process", "cmd", strings.Join(cmdline, " "), "timeout", e.timeout)
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	var errOut *string
	if e.separateStderr {
		errOut = decodedPtr(stderr.Bytes())
	}

	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		logger.Debug("process timed out", "elapsed", elapsed)
		return nil, NewTimedOutError(e.timeout, cmdline, decodedPtr(stdout.Bytes()), errOut)
	}

	if err != nil && !errors.Is(err, exec.ErrWaitDelay) {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := ExitCode(exitErr.ExitCode())
			logger.Debug("process failed", "code", code, "elapsed", elapsed)
			return nil, NewExitedError(code, cmdline, decodedPtr(stdout.Bytes()), errOut)
		}
		return nil, startError(e.path, err)
	}

	logger.Debug("process finished", "elapsed", elapsed)
	return &Result{Stdout: decodeOutput(stdout.Bytes())}, nil
}

func startError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("start executable").
		WithResource(path).
		WithIssue(issue.ExecutableNotFoundId).
		WithSuggestion("Check that the file exists and is executable").
		WithSuggestion("Run 'flechette version --check' to see the resolved executable").
		WithSuggestion("Override the path with the 'executable' config key or FLECHETTE_EXECUTABLE").
		Wrap(err).
		BuildError()
}
