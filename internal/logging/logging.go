// SPDX-License-Identifier: MPL-2.0

// Package logging builds the process logger from the verbosity and log file
// settings.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// Prefix is printed before every log line.
	Prefix = "flechette"

	// MinVerbosity silences every log line.
	MinVerbosity Verbosity = 0
	// MaxVerbosity enables debug output.
	MaxVerbosity Verbosity = 5
	// DefaultVerbosity logs info lines and above.
	DefaultVerbosity Verbosity = 4
)

// ErrInvalidVerbosity is the sentinel error wrapped by InvalidVerbosityError.
var ErrInvalidVerbosity = errors.New("invalid verbosity")

type (
	// Verbosity is the 0..5 level given on the command line, 0 being
	// silent and 5 the most talkative.
	Verbosity int

	// InvalidVerbosityError is returned when a Verbosity is out of range.
	InvalidVerbosityError struct {
		Value Verbosity
	}

	// Options configures New.
	Options struct {
		// Verbosity selects the minimum level written.
		Verbosity Verbosity
		// Output receives log lines; os.Stderr when nil.
		Output io.Writer
		// File, when set, also receives every line through a rotating writer.
		File string
		// Rotation tunes the rotating file writer.
		Rotation Rotation
	}

	// Rotation mirrors the lumberjack knobs exposed to users.
	Rotation struct {
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}
)

// DefaultRotation keeps a handful of small files.
var DefaultRotation = Rotation{MaxSizeMB: 16, MaxBackups: 3, MaxAgeDays: 28}

// Error implements the error interface.
func (e *InvalidVerbosityError) Error() string {
	return fmt.Sprintf("invalid verbosity %d (must be in range %d..%d)", e.Value, MinVerbosity, MaxVerbosity)
}

// Unwrap returns ErrInvalidVerbosity for errors.Is() compatibility.
func (e *InvalidVerbosityError) Unwrap() error { return ErrInvalidVerbosity }

// Validate returns an error if the verbosity is out of range.
func (v Verbosity) Validate() error {
	if v < MinVerbosity || v > MaxVerbosity {
		return &InvalidVerbosityError{Value: v}
	}
	return nil
}

// Level returns the charm log level for the verbosity. The second value is
// false for MinVerbosity, which writes nothing at all.
func (v Verbosity) Level() (log.Level, bool) {
	switch {
	case v <= MinVerbosity:
		return log.FatalLevel, false
	case v == 1:
		return log.FatalLevel, true
	case v == 2:
		return log.ErrorLevel, true
	case v == 3:
		return log.WarnLevel, true
	case v == 4:
		return log.InfoLevel, true
	default:
		return log.DebugLevel, true
	}
}

// New builds the logger. The returned closer releases the log file and is
// never nil.
func New(opts Options) (*log.Logger, io.Closer, error) {
	if err := opts.Verbosity.Validate(); err != nil {
		return nil, nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rot := opts.Rotation
		if rot == (Rotation{}) {
			rot = DefaultRotation
		}
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
			MaxAge:     rot.MaxAgeDays,
		}
		out = io.MultiWriter(out, file)
		closer = file
	}

	level, enabled := opts.Verbosity.Level()
	if !enabled {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: opts.Verbosity == MaxVerbosity,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
