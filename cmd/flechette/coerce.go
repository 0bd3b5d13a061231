// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/flechette-insolente/flechette/pkg/arguments"
)

type (
	// choiceValue is a pflag value restricted to a fixed list of strings.
	choiceValue struct {
		choices []string
		value   string
	}

	// pathType checks path values the way a parameter declaration asks.
	pathType struct {
		fileOkay    bool
		dirOkay     bool
		writable    bool
		resolvePath bool
		exists      bool
	}

	// pathListValue is a repeatable pflag value of checked paths.
	pathListValue struct {
		typ    pathType
		values []string
	}
)

var (
	_ pflag.Value      = (*choiceValue)(nil)
	_ pflag.SliceValue = (*pathListValue)(nil)
)

// coercers builds the CLI types of the parameter declarations.
func coercers() arguments.Coercers {
	return arguments.Coercers{
		arguments.CoerceChoice: coerceChoice,
		arguments.CoercePath:   coercePath,
	}
}

func coerceChoice(args []any, _ map[string]any) (any, error) {
	choices := make([]string, 0, len(args))
	for _, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("choice %v is not a string", a)
		}
		choices = append(choices, s)
	}
	if len(choices) == 0 {
		return nil, errors.New("choice type needs at least one choice")
	}
	return &choiceValue{choices: choices}, nil
}

func coercePath(_ []any, kwargs map[string]any) (any, error) {
	var (
		typ pathType
		err error
	)
	fields := []struct {
		key string
		dst *bool
		def bool
	}{
		{"file_okay", &typ.fileOkay, true},
		{"dir_okay", &typ.dirOkay, true},
		{"writable", &typ.writable, false},
		{"resolve_path", &typ.resolvePath, false},
		{"exists", &typ.exists, false},
	}
	for _, f := range fields {
		if *f.dst, err = boolKwarg(kwargs, f.key, f.def); err != nil {
			return nil, err
		}
	}
	return typ, nil
}

func boolKwarg(kwargs map[string]any, key string, def bool) (bool, error) {
	v, ok := kwargs[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("path option %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

func (c *choiceValue) String() string { return c.value }

func (c *choiceValue) Set(s string) error {
	if !slices.Contains(c.choices, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(c.choices, ", "))
	}
	c.value = s
	return nil
}

func (c *choiceValue) Type() string { return "choice" }

// check returns the value to pass on, resolved to an absolute path when
// the declaration asks for it.
func (p pathType) check(value string) (string, error) {
	if value == "" {
		return "", errors.New("path must not be empty")
	}

	info, err := os.Stat(value)
	switch {
	case err == nil:
		if info.IsDir() && !p.dirOkay {
			return "", fmt.Errorf("path %q is a directory", value)
		}
		if !info.IsDir() && !p.fileOkay {
			return "", fmt.Errorf("path %q is a file", value)
		}
		if p.writable && info.Mode().Perm()&0o200 == 0 {
			return "", fmt.Errorf("path %q is not writable", value)
		}
	case p.exists:
		return "", fmt.Errorf("path %q does not exist", value)
	}

	if p.resolvePath {
		return filepath.Abs(value)
	}
	return value, nil
}

// dirsOnly reports whether shell completion should offer directories only.
func (p pathType) dirsOnly() bool { return p.dirOkay && !p.fileOkay }

func (l *pathListValue) String() string {
	return "[" + strings.Join(l.values, ",") + "]"
}

func (l *pathListValue) Set(s string) error {
	v, err := l.typ.check(s)
	if err != nil {
		return err
	}
	l.values = append(l.values, v)
	return nil
}

func (l *pathListValue) Type() string { return "pathList" }

func (l *pathListValue) Append(s string) error { return l.Set(s) }

func (l *pathListValue) Replace(values []string) error {
	l.values = nil
	for _, v := range values {
		if err := l.Set(v); err != nil {
			return err
		}
	}
	return nil
}

func (l *pathListValue) GetSlice() []string { return slices.Clone(l.values) }
