// SPDX-License-Identifier: MPL-2.0

// Package executor runs an external executable under a wall-clock budget and
// classifies the outcome.
//
// A run either returns the decoded standard output of a clean exit or one of
// two failures carrying a structured payload: the process exited with a
// non-zero code (VariantExited) or it did not finish before the timeout
// (VariantTimedOut). Failing to start the process at all is neither; it is
// reported as an issue.ActionableError.
//
// Output captured on the timeout path is unreliable: depending on how the
// process was killed it may be empty even if the process wrote output
// before the deadline. Callers must not assume partial output is available.
package executor
