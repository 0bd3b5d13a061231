// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides environment and directory helpers (MustSetenv, MustChdir, ...),
// it writes the source trees and fake Sass executables the compiler tests
// run against.
package testutil
