// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when input exceeds the accepted size.
var ErrFileTooLarge = stderrors.New("file too large")

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>, one line per error.
//
// Examples:
//   - config.cue: compile.style: 2 errors in empty disjunction
//   - config.toml: compile.load_paths[1]: conflicting values 3 and string
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var cueErr errors.Error
	if !stderrors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range errors.Errors(err) {
		path := errors.Path(e)
		pathStr := formatPath(fieldPath(path))
		msg := e.Error()

		// CUE prefixes the message with the full path, definition included.
		for _, prefix := range []string{formatPath(path), pathStr} {
			if prefix != "" && strings.HasPrefix(msg, prefix+":") {
				msg = strings.TrimSpace(strings.TrimPrefix(msg, prefix+":"))
				break
			}
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	for i, line := range lines {
		lines[i] = filePath + ": " + line
	}
	return stderrors.New(strings.Join(lines, "\n"))
}

// fieldPath drops the leading definition selectors (#Config) so paths name
// the fields users wrote.
func fieldPath(path []string) []string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return path
}

// formatPath converts a CUE error path such as ["compile", "load_paths", "1"]
// to JSON-path notation: "compile.load_paths[1]".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		// Check if this looks like an array index (purely numeric)
		isIndex := true
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize returns an error wrapping ErrFileTooLarge when data is
// larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: size %d bytes exceeds maximum %d bytes: %w",
			filename, len(data), maxSize, ErrFileTooLarge)
	}
	return nil
}
