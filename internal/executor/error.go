// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// VariantExited means the process ran and returned a non-zero code.
	VariantExited Variant = iota + 1
	// VariantTimedOut means the process did not finish within the timeout.
	VariantTimedOut
)

var (
	// ErrExited is wrapped by execution errors of the VariantExited kind.
	ErrExited = errors.New("command exited with non-zero code")
	// ErrTimedOut is wrapped by execution errors of the VariantTimedOut kind.
	ErrTimedOut = errors.New("command timed out")
)

type (
	// Variant distinguishes the two execution failure kinds.
	Variant int

	// Payload is the structured record of a failed invocation. Exactly one
	// of ReturnCode and Timeout is set.
	Payload struct {
		ReturnCode *ExitCode
		Cmd        []string
		Stdout     *string
		Stderr     *string
		Timeout    *time.Duration
	}

	// ExecutionError reports a process that was spawned and failed.
	// Build it with NewExitedError or NewTimedOutError.
	ExecutionError struct {
		payload Payload
	}

	payloadJSON struct {
		ReturnCode *ExitCode `json:"returncode"`
		Cmd        []string  `json:"cmd"`
		Stdout     *string   `json:"stdout"`
		Stderr     *string   `json:"stderr"`
		Timeout    *float64  `json:"timeout"`
	}
)

// NewExitedError builds the error for a process that returned code.
// Stdout and stderr are nil when the stream was not captured separately.
func NewExitedError(code ExitCode, cmd []string, stdout, stderr *string) *ExecutionError {
	return &ExecutionError{payload: Payload{
		ReturnCode: &code,
		Cmd:        slices.Clone(cmd),
		Stdout:     cloneString(stdout),
		Stderr:     cloneString(stderr),
	}}
}

// NewTimedOutError builds the error for a process killed after timeout.
func NewTimedOutError(timeout time.Duration, cmd []string, stdout, stderr *string) *ExecutionError {
	return &ExecutionError{payload: Payload{
		Cmd:     slices.Clone(cmd),
		Stdout:  cloneString(stdout),
		Stderr:  cloneString(stderr),
		Timeout: &timeout,
	}}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantExited:
		return "exited"
	case VariantTimedOut:
		return "timedOut"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Variant reports which failure kind the error is.
func (e *ExecutionError) Variant() Variant {
	if e.payload.Timeout != nil {
		return VariantTimedOut
	}
	return VariantExited
}

// Payload returns a copy of the structured failure record.
func (e *ExecutionError) Payload() Payload {
	p := e.payload
	p.Cmd = slices.Clone(p.Cmd)
	p.Stdout = cloneString(p.Stdout)
	p.Stderr = cloneString(p.Stderr)
	if p.ReturnCode != nil {
		code := *p.ReturnCode
		p.ReturnCode = &code
	}
	if p.Timeout != nil {
		d := *p.Timeout
		p.Timeout = &d
	}
	return p
}

// ReturnCode returns the exit code of an exited process.
func (e *ExecutionError) ReturnCode() (ExitCode, bool) {
	if e.payload.ReturnCode == nil {
		return 0, false
	}
	return *e.payload.ReturnCode, true
}

// Timeout returns the exceeded timeout of a timed out process.
func (e *ExecutionError) Timeout() (time.Duration, bool) {
	if e.payload.Timeout == nil {
		return 0, false
	}
	return *e.payload.Timeout, true
}

// Cmd returns the full command line, executable path first.
func (e *ExecutionError) Cmd() []string { return slices.Clone(e.payload.Cmd) }

// Stdout returns the captured standard output, if any was captured.
func (e *ExecutionError) Stdout() (string, bool) { return deref(e.payload.Stdout) }

// Stderr returns the captured standard error, if it was captured apart.
func (e *ExecutionError) Stderr() (string, bool) { return deref(e.payload.Stderr) }

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// Error returns the short message; Details holds the captured output.
func (e *ExecutionError) Error() string {
	if code, ok := e.ReturnCode(); ok {
		return fmt.Sprintf("command failed with exit code: %d", code)
	}
	if timeout, ok := e.Timeout(); ok {
		return fmt.Sprintf("command exceeded timeout: %s", timeout)
	}
	return "unexpected command error"
}

// Unwrap returns ErrExited or ErrTimedOut for errors.Is() compatibility.
func (e *ExecutionError) Unwrap() error {
	if e.Variant() == VariantTimedOut {
		return ErrTimedOut
	}
	return ErrExited
}

// Details joins the command line, stdout and stderr with blank lines,
// leaving out empty sections.
func (e *ExecutionError) Details() string {
	lines := []string{strings.Join(e.payload.Cmd, " ")}
	if out, _ := e.Stdout(); out != "" {
		lines = append(lines, out)
	}
	if errOut, _ := e.Stderr(); errOut != "" {
		lines = append(lines, errOut)
	}

	sections := lines[:0]
	for _, l := range lines {
		if l != "" {
			sections = append(sections, l)
		}
	}
	return strings.Join(sections, "\n\n")
}

// MarshalJSON renders the payload with the timeout in seconds and unset
// fields as null.
func (e *ExecutionError) MarshalJSON() ([]byte, error) {
	out := payloadJSON{
		ReturnCode: e.payload.ReturnCode,
		Cmd:        e.payload.Cmd,
		Stdout:     e.payload.Stdout,
		Stderr:     e.payload.Stderr,
	}
	if e.payload.Timeout != nil {
		seconds := e.payload.Timeout.Seconds()
		out.Timeout = &seconds
	}
	return json.Marshal(out)
}
