// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// binaryPath is the flechette binary built for the script tests.
var binaryPath string

func TestMain(m *testing.M) {
	os.Exit(runTests(m))
}

func runTests(m *testing.M) int {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to get working directory:", err)
		return 1
	}

	// Walk up to the module root, where main.go lives.
	projectRoot := wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			fmt.Fprintln(os.Stderr, "could not find project root (go.mod)")
			return 1
		}
		projectRoot = parent
	}

	binDir, err := os.MkdirTemp("", "flechette-bin-")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create bin directory:", err)
		return 1
	}
	defer os.RemoveAll(binDir)

	binaryName := "flechette"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath = filepath.Join(binDir, binaryName)

	build := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
	build.Dir = projectRoot
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to build flechette:", err)
		return 1
	}

	return m.Run()
}

// TestScripts runs the CLI scripts in testdata/script against the built binary.
func TestScripts(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("scripts install a POSIX shell stand-in for dart-sass")
	}

	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("PATH", filepath.Dir(binaryPath)+string(os.PathListSeparator)+env.Getenv("PATH"))
			// Keep the user's configuration out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("HOME", env.WorkDir)
			return nil
		},
		ContinueOnError: true,
	})
}
