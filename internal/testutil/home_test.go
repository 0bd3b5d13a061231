// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

const osWindows = "windows"

func TestSetHomeDir_Linux(t *testing.T) {
	if runtime.GOOS == osWindows {
		t.Skip("skipping Linux-specific test on Windows")
	}

	tmpDir := t.TempDir()
	originalHome := os.Getenv("HOME")

	cleanup := SetHomeDir(t, tmpDir)

	// Verify HOME is set to tmpDir
	if got := os.Getenv("HOME"); got != tmpDir {
		t.Errorf("HOME = %q, want %q", got, tmpDir)
	}

	// Cleanup should restore original
	cleanup()

	if got := os.Getenv("HOME"); got != originalHome {
		t.Errorf("After cleanup, HOME = %q, want %q", got, originalHome)
	}
}

func TestSetHomeDir_Windows(t *testing.T) {
	if runtime.GOOS != osWindows {
		t.Skip("skipping Windows-specific test on non-Windows")
	}

	tmpDir := t.TempDir()
	originalUserProfile := os.Getenv("USERPROFILE")

	cleanup := SetHomeDir(t, tmpDir)

	// Verify USERPROFILE is set to tmpDir
	if got := os.Getenv("USERPROFILE"); got != tmpDir {
		t.Errorf("USERPROFILE = %q, want %q", got, tmpDir)
	}

	// Cleanup should restore original
	cleanup()

	if got := os.Getenv("USERPROFILE"); got != originalUserProfile {
		t.Errorf("After cleanup, USERPROFILE = %q, want %q", got, originalUserProfile)
	}
}
