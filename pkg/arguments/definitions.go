// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"github.com/flechette-insolente/flechette/pkg/lazy"
)

// Parameter names.
const (
	SourceName      = "source"
	DestinationName = "destination"
	StyleName       = "style"
	LoadPathsName   = "load_paths"
	IndentedName    = "indented"
	SourceMapName   = "source_map"
)

// Output styles accepted by the executable, first one is the default.
const (
	StyleExpanded   = "expanded"
	StyleCompressed = "compressed"
)

// ValueChoices returns the enumerated values for every choice parameter,
// keyed by parameter name, in declared order.
func ValueChoices() map[string][]string {
	return map[string][]string{
		StyleName: {StyleExpanded, StyleCompressed},
	}
}

// CommandArguments returns the positional parameter declarations.
// The values are fresh on every call; the Registry keeps its own copy.
func CommandArguments() []ParameterSpec {
	return []ParameterSpec{
		{
			Name:       SourceName,
			Kind:       KindPositional,
			Label:      "source path",
			CoerceType: CoercePath,
			Type: lazy.Capture().
				With("file_okay", true).
				With("dir_okay", true).
				With("writable", true).
				With("resolve_path", false).
				With("exists", true),
			Required: true,
			Help:     "Sass source file or directory.",
		},
		{
			// Existence is not checked: whether the destination must be a file
			// or a directory depends on the source, only the executable knows.
			Name:       DestinationName,
			Kind:       KindPositional,
			Label:      "destination path",
			CoerceType: CoercePath,
			Type: lazy.Capture().
				With("file_okay", true).
				With("dir_okay", true).
				With("writable", true).
				With("resolve_path", false),
			Help: "CSS destination file or directory.",
		},
	}
}

// CommandOptions returns the flag parameter declarations.
func CommandOptions() []ParameterSpec {
	styles := ValueChoices()[StyleName]
	styleArgs := make([]any, len(styles))
	for i, s := range styles {
		styleArgs[i] = s
	}

	return []ParameterSpec{
		{
			Name:       StyleName,
			Kind:       KindChoice,
			Tokens:     []string{"--style"},
			Choices:    styles,
			Label:      "output style",
			CoerceType: CoerceChoice,
			Type:       lazy.Capture(styleArgs...),
			Metavar:    "STRING",
			Help:       "Output style.",
			Default:    styles[0],
		},
		{
			Name:       LoadPathsName,
			Kind:       KindMultiPath,
			Tokens:     []string{"--load-path"},
			Label:      "load-path",
			CoerceType: CoercePath,
			Type: lazy.Capture().
				With("file_okay", false).
				With("dir_okay", true).
				With("writable", true).
				With("resolve_path", false).
				With("exists", true),
			Metavar: "PATH",
			Help:    "A path to use when resolving imports. May be passed multiple times.",
		},
		{
			Name:   IndentedName,
			Kind:   KindToggle,
			Tokens: []string{"--indented", "--no-indented"},
			Label:  "indented",
			Help:   "Use the indented syntax for input from stdin.",
		},
		{
			Name:    SourceMapName,
			Kind:    KindToggle,
			Tokens:  []string{"--source-map", "--no-source-map"},
			Label:   "source-map",
			Help:    "Whether to generate source maps.",
			Default: true,
		},
	}
}
