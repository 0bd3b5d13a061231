// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/flechette-insolente/flechette/internal/logging"
	"github.com/flechette-insolente/flechette/pkg/arguments"
	"github.com/flechette-insolente/flechette/pkg/platform"
)

const (
	// DefaultTimeoutSeconds matches the executor default.
	DefaultTimeoutSeconds TimeoutSeconds = 30
)

var (
	// ErrInvalidOutputStyle is returned when an OutputStyle value is not recognized.
	ErrInvalidOutputStyle = errors.New("invalid output style")
	// ErrInvalidTimeout is the sentinel error wrapped by InvalidTimeoutError.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidLoadPath is the sentinel error wrapped by InvalidLoadPathError.
	ErrInvalidLoadPath = errors.New("invalid load path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputStyle is the dart-sass --style value.
	OutputStyle string

	// InvalidOutputStyleError is returned when an OutputStyle value is not recognized.
	InvalidOutputStyleError struct {
		Value OutputStyle
	}

	// TimeoutSeconds is a run budget in seconds. Fractions are allowed.
	TimeoutSeconds float64

	// InvalidTimeoutError is returned when a TimeoutSeconds is not positive.
	InvalidTimeoutError struct {
		Value TimeoutSeconds
	}

	// InvalidLoadPathError is returned for a blank load path entry.
	InvalidLoadPathError struct {
		Index int
	}

	// InvalidConfigError collects every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// CompileConfig holds the defaults applied to every compile.
	CompileConfig struct {
		// Style is the output style.
		Style OutputStyle `json:"style" mapstructure:"style" toml:"style"`
		// LoadPaths are searched for imports, before any given on the command line.
		LoadPaths []string `json:"load_paths" mapstructure:"load_paths" toml:"load_paths"`
		// SourceMap toggles source map generation.
		SourceMap bool `json:"source_map" mapstructure:"source_map" toml:"source_map"`
	}

	// Config is the application configuration.
	Config struct {
		// Executable overrides the bundled dart-sass build when set.
		Executable string `json:"executable" mapstructure:"executable" toml:"executable"`
		// VendorDir holds the bundled builds, one sub directory per platform.
		VendorDir string `json:"vendor_dir" mapstructure:"vendor_dir" toml:"vendor_dir"`
		// Timeout bounds every compiler run.
		Timeout TimeoutSeconds `json:"timeout" mapstructure:"timeout" toml:"timeout"`
		// Verbosity selects the log level, 0 to 5.
		Verbosity logging.Verbosity `json:"verbosity" mapstructure:"verbosity" toml:"verbosity"`
		// LogFile also receives log lines when set.
		LogFile string `json:"log_file" mapstructure:"log_file" toml:"log_file"`
		// Compile holds the compile defaults.
		Compile CompileConfig `json:"compile" mapstructure:"compile" toml:"compile"`

		// Source is the file the values were read from. It is empty when only
		// defaults and environment variables apply.
		Source string `json:"-" mapstructure:"-" toml:"-"`
	}
)

// String returns the string representation of the OutputStyle.
func (s OutputStyle) String() string { return string(s) }

// IsValid returns whether the OutputStyle is one dart-sass accepts.
func (s OutputStyle) IsValid() (bool, []error) {
	if !slices.Contains(arguments.ValueChoices()[arguments.StyleName], string(s)) {
		return false, []error{&InvalidOutputStyleError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputStyleError.
func (e *InvalidOutputStyleError) Error() string {
	return fmt.Sprintf("invalid output style %q (valid: %s)", e.Value,
		strings.Join(arguments.ValueChoices()[arguments.StyleName], ", "))
}

// Unwrap returns ErrInvalidOutputStyle for errors.Is() compatibility.
func (e *InvalidOutputStyleError) Unwrap() error { return ErrInvalidOutputStyle }

// Duration converts the timeout to a time.Duration.
func (s TimeoutSeconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// IsValid returns whether the timeout is positive.
func (s TimeoutSeconds) IsValid() (bool, []error) {
	if s <= 0 {
		return false, []error{&InvalidTimeoutError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTimeoutError.
func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid timeout %v: must be a positive number of seconds", float64(e.Value))
}

// Unwrap returns ErrInvalidTimeout for errors.Is() compatibility.
func (e *InvalidTimeoutError) Unwrap() error { return ErrInvalidTimeout }

// Error implements the error interface for InvalidLoadPathError.
func (e *InvalidLoadPathError) Error() string {
	return fmt.Sprintf("invalid load path at index %d: must be non-empty", e.Index)
}

// Unwrap returns ErrInvalidLoadPath for errors.Is() compatibility.
func (e *InvalidLoadPathError) Unwrap() error { return ErrInvalidLoadPath }

// IsValid returns whether the CompileConfig has valid fields.
func (c CompileConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Style.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for i, p := range c.LoadPaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, &InvalidLoadPathError{Index: i})
		}
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Timeout.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if err := c.Verbosity.Validate(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.Compile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Validate returns the first IsValid error, if any.
func (c Config) Validate() error {
	if valid, errs := c.IsValid(); !valid {
		return errs[0]
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so
// errors.Is() matches both the sentinel and any field sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ExecutablePath returns the configured executable, or the bundled build
// for b inside VendorDir.
func (c *Config) ExecutablePath(b platform.Build) string {
	if c.Executable != "" {
		return c.Executable
	}
	return b.ExecutablePath(c.VendorDir)
}

// CompileParams returns the compile defaults as builder params. Load paths
// given on the command line are appended to the configured ones.
func (c *Config) CompileParams(extraLoadPaths ...string) []arguments.Param {
	params := []arguments.Param{
		arguments.Style(c.Compile.Style.String()),
		arguments.SourceMap(c.Compile.SourceMap),
	}
	if paths := slices.Concat(c.Compile.LoadPaths, extraLoadPaths); len(paths) > 0 {
		params = append(params, arguments.LoadPaths(paths...))
	}
	return params
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Executable: "",
		VendorDir:  platform.DefaultVendorDir,
		Timeout:    DefaultTimeoutSeconds,
		Verbosity:  logging.DefaultVerbosity,
		LogFile:    "",
		Compile: CompileConfig{
			Style:     arguments.StyleExpanded,
			LoadPaths: []string{},
			SourceMap: true,
		},
	}
}
