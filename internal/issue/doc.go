// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog holds Markdown guidance, rendered with
// glamour, for the failures a user is most likely to hit when driving the
// Sass compiler.
package issue
