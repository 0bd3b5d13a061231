// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
)

// DefaultVendorDir is the directory, relative to the working directory,
// holding one sub directory per bundled build.
const DefaultVendorDir = "vendor"

// ErrUnsupportedBuild is the sentinel error wrapped by UnsupportedBuildError.
var ErrUnsupportedBuild = errors.New("unsupported dart-sass build")

// supportedBuilds lists the published dart-sass standalone builds. All of
// them come from the same release.
var supportedBuilds = []string{
	"linux-arm",
	"linux-arm64",
	"linux-ia32",
	"linux-x64",
	"macos-arm64",
	"macos-x64",
	"windows-ia32",
	"windows-x64",
}

// hostOnce caches the host build for the lifetime of the process.
var hostOnce = sync.OnceValue(func() Build {
	return FromGo(runtime.GOOS, runtime.GOARCH)
})

type (
	// Build identifies one dart-sass standalone build.
	Build struct {
		System  string
		Machine string
	}

	// UnsupportedBuildError is returned when no bundled build exists for a
	// system and machine pair.
	UnsupportedBuildError struct {
		Code string
	}
)

// Error implements the error interface.
func (e *UnsupportedBuildError) Error() string {
	return fmt.Sprintf("no dart-sass build for %q (available: %s)", e.Code, strings.Join(supportedBuilds, ", "))
}

// Unwrap returns ErrUnsupportedBuild for errors.Is() compatibility.
func (e *UnsupportedBuildError) Unwrap() error { return ErrUnsupportedBuild }

// Detect returns the build matching the running host.
func Detect() Build {
	return hostOnce()
}

// FromGo builds the release names from GOOS and GOARCH values.
func FromGo(goos, goarch string) Build {
	return Build{
		System:  normalizeSystem(strings.ToLower(goos)),
		Machine: normalizeMachine(strings.ToLower(goarch)),
	}
}

// Code returns the archive name, e.g. "linux-x64".
func (b Build) Code() string {
	return b.System + "-" + b.Machine
}

// String implements fmt.Stringer.
func (b Build) String() string { return b.Code() }

// Supported reports whether dart-sass publishes this build.
func (b Build) Supported() bool {
	return slices.Contains(supportedBuilds, b.Code())
}

// Validate returns an UnsupportedBuildError for builds dart-sass does not
// publish.
func (b Build) Validate() error {
	if !b.Supported() {
		return &UnsupportedBuildError{Code: b.Code()}
	}
	return nil
}

// ExecutableName returns the launcher file name of the build.
func (b Build) ExecutableName() string {
	if b.System == SystemWindows {
		return "sass.bat"
	}
	return "sass"
}

// ExecutablePath returns <vendorDir>/<code>/<name>. An empty vendorDir
// falls back to DefaultVendorDir.
func (b Build) ExecutablePath(vendorDir string) string {
	if vendorDir == "" {
		vendorDir = DefaultVendorDir
	}
	return filepath.Join(vendorDir, b.Code(), b.ExecutableName())
}

// SupportedBuilds returns the published build codes.
func SupportedBuilds() []string {
	return slices.Clone(supportedBuilds)
}
