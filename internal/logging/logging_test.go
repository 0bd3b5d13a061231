// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/flechette-insolente/flechette/internal/testutil"
)

func TestVerbosity_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		verbosity Verbosity
		level     log.Level
		enabled   bool
	}{
		{0, log.FatalLevel, false},
		{1, log.FatalLevel, true},
		{2, log.ErrorLevel, true},
		{3, log.WarnLevel, true},
		{4, log.InfoLevel, true},
		{5, log.DebugLevel, true},
	}

	for _, tt := range tests {
		level, enabled := tt.verbosity.Level()
		if level != tt.level || enabled != tt.enabled {
			t.Errorf("Verbosity(%d).Level() = %v, %v; want %v, %v", tt.verbosity, level, enabled, tt.level, tt.enabled)
		}
	}
}

func TestVerbosity_Validate(t *testing.T) {
	t.Parallel()

	for _, v := range []Verbosity{-1, 6} {
		err := v.Validate()
		var invalid *InvalidVerbosityError
		if !errors.As(err, &invalid) || !errors.Is(err, ErrInvalidVerbosity) {
			t.Errorf("Verbosity(%d).Validate() = %v, want InvalidVerbosityError", v, err)
		}
	}
	if err := DefaultVerbosity.Validate(); err != nil {
		t.Errorf("DefaultVerbosity.Validate() = %v", err)
	}
}

func TestNew_FiltersByVerbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		verbosity Verbosity
		want      []string
		notWant   []string
	}{
		{5, []string{"debug line", "info line", "warn line"}, nil},
		{4, []string{"info line", "warn line"}, []string{"debug line"}},
		{3, []string{"warn line"}, []string{"info line"}},
		{0, nil, []string{"warn line", "info line"}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger, closer, err := New(Options{Verbosity: tt.verbosity, Output: &buf})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		logger.Debug("debug line")
		logger.Info("info line")
		logger.Warn("warn line")
		testutil.MustClose(t, closer)

		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("verbosity %d: output %q should contain %q", tt.verbosity, out, w)
			}
		}
		for _, nw := range tt.notWant {
			if strings.Contains(out, nw) {
				t.Errorf("verbosity %d: output %q should not contain %q", tt.verbosity, out, nw)
			}
		}
		if tt.verbosity > 0 && !strings.Contains(out, Prefix) {
			t.Errorf("verbosity %d: output %q should carry the prefix", tt.verbosity, out)
		}
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "flechette.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{Verbosity: DefaultVerbosity, Output: &buf, File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("compiled", "source", "main.scss")
	testutil.MustClose(t, closer)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "compiled") || !strings.Contains(buf.String(), "compiled") {
		t.Errorf("log line missing: file %q, output %q", data, buf.String())
	}
}

func TestNew_RejectsInvalidVerbosity(t *testing.T) {
	t.Parallel()

	if _, _, err := New(Options{Verbosity: 9}); !errors.Is(err, ErrInvalidVerbosity) {
		t.Errorf("New() error = %v, want ErrInvalidVerbosity", err)
	}
}
