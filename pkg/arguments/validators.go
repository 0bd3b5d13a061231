// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// validator checks one caller value against its declaration and returns
// the tokens to append. A nil slice with a nil error appends nothing.
type validator func(spec ParameterSpec, value any) ([]string, error)

// validatorFor returns the validator implementing a kind's rule.
func validatorFor(kind Kind) validator {
	switch kind {
	case KindChoice:
		return validateChoice
	case KindMultiPath:
		return validatePathList
	case KindToggle:
		return validateToggle
	case KindPath:
		return validatePath
	default:
		return nil
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// validateSource requires the source to exist and returns it cleaned.
func validateSource(value string) (string, error) {
	if value == "" || !pathExists(value) {
		return "", &SourceNotFoundError{Path: value}
	}
	return filepath.Clean(value), nil
}

// validateDestination only normalizes the path: its required shape depends
// on the source and is judged by the executable.
func validateDestination(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &InvalidValueTypeError{Name: DestinationName, Value: value, Expected: "a path string"}
	}
	if s == "" {
		return "", nil
	}
	return filepath.Clean(s), nil
}

func validateChoice(spec ParameterSpec, value any) ([]string, error) {
	s, ok := value.(string)
	if !ok || !slices.Contains(spec.Choices, s) {
		return nil, &InvalidChoiceError{
			Name:    spec.Name,
			Label:   spec.Label,
			Value:   fmt.Sprint(value),
			Choices: slices.Clone(spec.Choices),
		}
	}
	return []string{spec.Tokens[0], s}, nil
}

// validatePathList rejects the whole list when any entry is missing and
// reports every missing entry in the caller's order.
func validatePathList(spec ParameterSpec, value any) ([]string, error) {
	var paths []string
	switch v := value.(type) {
	case []string:
		paths = v
	case string:
		paths = []string{v}
	case nil:
		return nil, nil
	default:
		return nil, &InvalidValueTypeError{Name: spec.Name, Value: value, Expected: "a list of paths"}
	}

	var invalid []string
	for _, p := range paths {
		if !pathExists(p) {
			invalid = append(invalid, p)
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidPathListError{Name: spec.Name, Label: spec.Label, Invalid: invalid}
	}

	tokens := make([]string, 0, 2*len(paths))
	for _, p := range paths {
		tokens = append(tokens, spec.Tokens[0], p)
	}
	return tokens, nil
}

func validatePath(spec ParameterSpec, value any) ([]string, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &InvalidValueTypeError{Name: spec.Name, Value: value, Expected: "a path string"}
	}
	if !pathExists(s) {
		return nil, &PathNotFoundError{Name: spec.Name, Label: spec.Label, Path: s}
	}
	return []string{spec.Tokens[0], s}, nil
}

// validateToggle never fails: true and false select a token, any other
// value (including an unset *bool) renders nothing.
func validateToggle(spec ParameterSpec, value any) ([]string, error) {
	switch v := value.(type) {
	case bool:
		return toggleTokens(spec, v), nil
	case *bool:
		if v != nil {
			return toggleTokens(spec, *v), nil
		}
	}
	return nil, nil
}

func toggleTokens(spec ParameterSpec, enabled bool) []string {
	if enabled {
		return []string{spec.Tokens[0]}
	}
	return []string{spec.Tokens[1]}
}
