// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is wrapped by every error caused by the parameter
	// declarations themselves or by a caller naming a parameter that
	// does not exist.
	ErrConfiguration = errors.New("invalid parameter configuration")

	// ErrValidation is wrapped by every error caused by a caller value that
	// fails its validator. A validation error is always returned before any
	// process is spawned.
	ErrValidation = errors.New("invalid argument value")
)

type (
	// DuplicateParameterError is returned when a name is declared more than
	// once across the positional-argument and option tables.
	DuplicateParameterError struct {
		Name string
	}

	// InvalidParameterSpecError is returned when a declaration is
	// internally inconsistent (wrong token count, choices missing, ...).
	InvalidParameterSpecError struct {
		Name   string
		Reason string
	}

	// UnknownParameterError is returned when a caller supplies a value for
	// a name that has no registered validator.
	UnknownParameterError struct {
		Name string
	}

	// RepeatedParameterError is returned when a caller supplies the same
	// parameter twice in a single build.
	RepeatedParameterError struct {
		Name string
	}

	// UnknownCoerceTypeError is returned when a declaration names a coerce
	// type that the CLI surface did not provide.
	UnknownCoerceTypeError struct {
		Name       string
		CoerceType CoerceType
	}

	// MissingTypeDescriptorError is returned when a declaration names a
	// coerce type but carries no type descriptor to resolve.
	MissingTypeDescriptorError struct {
		Name       string
		CoerceType CoerceType
	}

	// SourceNotFoundError is returned when the source path does not exist.
	SourceNotFoundError struct {
		Path string
	}

	// PathNotFoundError is returned when a single-path option does not exist.
	PathNotFoundError struct {
		Name  string
		Label string
		Path  string
	}

	// InvalidChoiceError is returned when a value is not one of the
	// declared choices. Choices keeps the declared order.
	InvalidChoiceError struct {
		Name    string
		Label   string
		Value   string
		Choices []string
	}

	// InvalidPathListError is returned when one or more entries of a path
	// list do not exist. Invalid keeps the caller's order and lists every
	// missing entry, not only the first one.
	InvalidPathListError struct {
		Name    string
		Label   string
		Invalid []string
	}

	// InvalidValueTypeError is returned when a value has a Go type the
	// parameter's validator cannot interpret.
	InvalidValueTypeError struct {
		Name     string
		Value    any
		Expected string
	}
)

// Error implements the error interface for DuplicateParameterError.
func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("Found multiple definition for parameter '%s'", e.Name)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *DuplicateParameterError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface for InvalidParameterSpecError.
func (e *InvalidParameterSpecError) Error() string {
	return fmt.Sprintf("invalid declaration for parameter '%s': %s", e.Name, e.Reason)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *InvalidParameterSpecError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface for UnknownParameterError.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("Unknowed argument: %s", e.Name)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *UnknownParameterError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface for RepeatedParameterError.
func (e *RepeatedParameterError) Error() string {
	return fmt.Sprintf("argument given more than once: %s", e.Name)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *RepeatedParameterError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface for UnknownCoerceTypeError.
func (e *UnknownCoerceTypeError) Error() string {
	return fmt.Sprintf("Argument '%s' define a coerce type '%s' that is not available from resolver", e.Name, e.CoerceType)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *UnknownCoerceTypeError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface for MissingTypeDescriptorError.
func (e *MissingTypeDescriptorError) Error() string {
	return fmt.Sprintf("Argument '%s' define a coerce type '%s' but has no type descriptor", e.Name, e.CoerceType)
}

// Unwrap returns ErrConfiguration for errors.Is() compatibility.
func (e *MissingTypeDescriptorError) Unwrap() error { return ErrConfiguration }

// Error implements the error interface for SourceNotFoundError.
func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("Given source path does not exist: %s", e.Path)
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *SourceNotFoundError) Unwrap() error { return ErrValidation }

// Error implements the error interface for PathNotFoundError.
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("Given '%s' does not exist: %s", e.Label, e.Path)
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *PathNotFoundError) Unwrap() error { return ErrValidation }

// Error implements the error interface for InvalidChoiceError.
func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("Invalid given %s '%s', it should be one of: %s",
		e.Label, e.Value, strings.Join(e.Choices, ", "))
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *InvalidChoiceError) Unwrap() error { return ErrValidation }

// Error implements the error interface for InvalidPathListError.
func (e *InvalidPathListError) Error() string {
	return fmt.Sprintf("Some given '%s' does not exist: \n%s", e.Label, strings.Join(e.Invalid, "\n"))
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *InvalidPathListError) Unwrap() error { return ErrValidation }

// Error implements the error interface for InvalidValueTypeError.
func (e *InvalidValueTypeError) Error() string {
	return fmt.Sprintf("invalid value %v (%T) for '%s': expected %s", e.Value, e.Value, e.Name, e.Expected)
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *InvalidValueTypeError) Unwrap() error { return ErrValidation }
