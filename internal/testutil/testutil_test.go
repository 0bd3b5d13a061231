// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestMustChdir_Restores(t *testing.T) {
	// Not parallel: changes the process working directory.
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	restore := MustChdir(t, dir)
	if got, _ := os.Getwd(); filepath.Base(got) != filepath.Base(dir) {
		t.Errorf("Getwd() = %q, want %q", got, dir)
	}
	restore()
	if got, _ := os.Getwd(); got != before {
		t.Errorf("Getwd() after restore = %q, want %q", got, before)
	}
}

func TestMustSetenv_Restores(t *testing.T) {
	// Not parallel: changes the process environment.
	const key = "FLECHETTE_TESTUTIL_SETENV"

	restore := MustSetenv(t, key, "first")
	if got := os.Getenv(key); got != "first" {
		t.Fatalf("Getenv() = %q, want %q", got, "first")
	}

	restoreInner := MustSetenv(t, key, "second")
	restoreInner()
	if got := os.Getenv(key); got != "first" {
		t.Errorf("Getenv() after inner restore = %q, want %q", got, "first")
	}

	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s should be unset after restore", key)
	}
}

func TestWriteExecutable(t *testing.T) {
	t.Parallel()

	path := WriteExecutable(t, filepath.Join(t.TempDir(), "bin", "sass"), `echo "1.77.8"`)
	out, err := exec.Command(path).Output()
	if err != nil {
		t.Fatalf("running the executable: %v", err)
	}
	if strings.TrimSpace(string(out)) != "1.77.8" {
		t.Errorf("output = %q", out)
	}
}

func TestNewSourceTree(t *testing.T) {
	t.Parallel()

	tree := NewSourceTree(t)
	if info, err := os.Stat(tree.Source); err != nil || info.IsDir() {
		t.Errorf("Source %q should be a file: %v", tree.Source, err)
	}
	if info, err := os.Stat(tree.Libraries); err != nil || !info.IsDir() {
		t.Errorf("Libraries %q should be a directory: %v", tree.Libraries, err)
	}
}
