// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"errors"
	"fmt"
	"strconv"
)

// Exit codes dart-sass borrows from sysexits.h.
const (
	ExitCodeUsage   ExitCode = 64
	ExitCodeDataErr ExitCode = 65
	ExitCodeNoInput ExitCode = 66
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status. A process killed by a signal
	// reports -1.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// -1..255 range a process can report.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range -1..255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is() compatibility.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the code cannot come from a process.
func (c ExitCode) Validate() error {
	if c < -1 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code means a clean exit.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// Meaning returns a short description of the dart-sass exit codes, or an
// empty string for codes without one.
func (c ExitCode) Meaning() string {
	switch c {
	case ExitCodeUsage:
		return "invalid command line usage"
	case ExitCodeDataErr:
		return "stylesheet compilation error"
	case ExitCodeNoInput:
		return "input could not be read"
	case -1:
		return "terminated by a signal"
	default:
		return ""
	}
}

// String returns the decimal representation.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
