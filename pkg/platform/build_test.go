// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFromGo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos, goarch string
		code         string
		supported    bool
	}{
		{"linux", "amd64", "linux-x64", true},
		{"linux", "386", "linux-ia32", true},
		{"linux", "arm64", "linux-arm64", true},
		{"linux", "arm", "linux-arm", true},
		{"darwin", "arm64", "macos-arm64", true},
		{"darwin", "amd64", "macos-x64", true},
		{"windows", "amd64", "windows-x64", true},
		{"windows", "386", "windows-ia32", true},
		{"Linux", "AMD64", "linux-x64", true},
		{"darwin", "386", "macos-ia32", false},
		{"freebsd", "amd64", "freebsd-x64", false},
		{"linux", "riscv64", "linux-riscv64", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			b := FromGo(tt.goos, tt.goarch)
			if b.Code() != tt.code {
				t.Errorf("Code() = %q, want %q", b.Code(), tt.code)
			}
			if b.Supported() != tt.supported {
				t.Errorf("Supported() = %v, want %v", b.Supported(), tt.supported)
			}

			err := b.Validate()
			if tt.supported && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.supported {
				var unsupported *UnsupportedBuildError
				if !errors.As(err, &unsupported) || !errors.Is(err, ErrUnsupportedBuild) {
					t.Fatalf("Validate() = %v, want UnsupportedBuildError", err)
				}
				if unsupported.Code != tt.code {
					t.Errorf("Code = %q, want %q", unsupported.Code, tt.code)
				}
			}
		})
	}
}

func TestBuild_ExecutablePath(t *testing.T) {
	t.Parallel()

	linux := Build{System: SystemLinux, Machine: MachineX64}
	if got, want := linux.ExecutablePath("/opt/flechette/vendor"), filepath.Join("/opt/flechette/vendor", "linux-x64", "sass"); got != want {
		t.Errorf("ExecutablePath() = %q, want %q", got, want)
	}
	if got, want := linux.ExecutablePath(""), filepath.Join(DefaultVendorDir, "linux-x64", "sass"); got != want {
		t.Errorf("ExecutablePath(\"\") = %q, want %q", got, want)
	}

	windows := Build{System: SystemWindows, Machine: MachineIA32}
	if got := windows.ExecutableName(); got != "sass.bat" {
		t.Errorf("ExecutableName() = %q, want sass.bat", got)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	if got, want := Detect(), FromGo(runtime.GOOS, runtime.GOARCH); got != want {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestSupportedBuilds_IsACopy(t *testing.T) {
	t.Parallel()

	builds := SupportedBuilds()
	if len(builds) != 8 {
		t.Fatalf("SupportedBuilds() has %d entries, want 8", len(builds))
	}
	builds[0] = "mutated"
	if SupportedBuilds()[0] != "linux-arm" {
		t.Error("SupportedBuilds() should return a copy")
	}
}
