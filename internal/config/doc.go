// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper, with CUE or
// TOML as the file format.
//
// Configuration is loaded from ~/.config/flechette/config.cue or config.toml
// (or the XDG equivalent on Linux, ~/Library/Application Support/flechette on
// macOS, %APPDATA%\flechette on Windows), falling back to the current
// directory. Environment variables prefixed with FLECHETTE_ override file
// values, e.g. FLECHETTE_EXECUTABLE or FLECHETTE_COMPILE_STYLE.
//
// Both formats are validated against the same embedded CUE schema
// (config_schema.cue).
package config
