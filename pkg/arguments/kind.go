// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"errors"
	"fmt"
)

const (
	// KindPositional is a value without a flag token (source, destination).
	KindPositional Kind = "positional"
	// KindToggle is a tri-state boolean rendered as an enable or a disable flag.
	KindToggle Kind = "toggle"
	// KindChoice is a value restricted to an enumerated set.
	KindChoice Kind = "choice"
	// KindMultiPath is a list of existing paths, one flag token per entry.
	KindMultiPath Kind = "multi-path"
	// KindPath is a single existing path.
	KindPath Kind = "path"

	// CoercePath asks the CLI surface for a filesystem path type.
	CoercePath CoerceType = "path"
	// CoerceChoice asks the CLI surface for an enumerated choice type.
	CoerceChoice CoerceType = "choice"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid parameter kind")

type (
	// Kind classifies how a parameter is validated and rendered.
	Kind string

	// CoerceType names the CLI type a parameter declaration resolves to.
	// The empty value means the declaration carries no CLI type.
	CoerceType string

	// InvalidKindError is returned when a Kind value is not recognized.
	InvalidKindError struct {
		Value Kind
	}
)

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// IsValid returns whether the Kind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindPositional, KindToggle, KindChoice, KindMultiPath, KindPath:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// tokenCount returns how many flag tokens a parameter of this kind declares.
func (k Kind) tokenCount() int {
	switch k {
	case KindPositional:
		return 0
	case KindToggle:
		return 2
	default:
		return 1
	}
}

// String returns the string representation of the CoerceType.
func (c CoerceType) String() string { return string(c) }

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid parameter kind %q (valid: positional, toggle, choice, multi-path, path)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
