// SPDX-License-Identifier: MPL-2.0

// Package arguments models every parameter the dart-sass executable accepts.
//
// The static tables in definitions.go are the single source of truth: the
// Registry built from them validates caller values and renders the ordered
// token list handed to the executable, and the same declarations produce
// the CLI surface through lazily resolved type descriptors (see CLIOptions).
//
// The rendered command line follows the executable's contract:
//
//	<source>[:<destination>] [--style <name>] [--load-path <path>]...
//	    [--indented|--no-indented] [--source-map|--no-source-map]
//
// Option tokens appear in the order the caller supplied them.
package arguments
