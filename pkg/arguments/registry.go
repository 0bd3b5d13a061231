// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"errors"
	"fmt"
	"slices"

	"github.com/flechette-insolente/flechette/pkg/lazy"
)

type (
	// ParameterSpec declares one supported argument or flag.
	ParameterSpec struct {
		// Name is unique across positional arguments and options.
		Name string
		// Kind selects the validator and the rendering rule.
		Kind Kind
		// Tokens holds no token for positional parameters, the enable and
		// disable tokens for toggles, and the flag token otherwise.
		Tokens []string
		// Choices lists the accepted values of a choice parameter in order.
		Choices []string
		// Label names the parameter in error messages.
		Label string
		// CoerceType selects the CLI type Type resolves to.
		CoerceType CoerceType
		// Type is the deferred CLI type constructor call.
		Type *lazy.Deferred
		// Metavar is the value placeholder shown in help output.
		Metavar string
		// Help is the one-line help text.
		Help string
		// Default is the CLI default value, nil when there is none.
		Default any
		// Required marks positional arguments that must be given.
		Required bool
	}

	// Registry is the immutable lookup table built from parameter
	// declarations. It is safe for concurrent use.
	Registry struct {
		arguments  []ParameterSpec
		options    []ParameterSpec
		byName     map[string]ParameterSpec
		validators map[string]validator
	}
)

var defaultRegistry = MustNewRegistry(CommandArguments(), CommandOptions())

// Default returns the registry built from the static dart-sass declarations.
func Default() *Registry { return defaultRegistry }

// NewRegistry validates the declarations and builds the name to validator
// table. A name declared twice, in either table, fails with
// *DuplicateParameterError.
func NewRegistry(arguments, options []ParameterSpec) (*Registry, error) {
	r := &Registry{
		byName:     make(map[string]ParameterSpec, len(arguments)+len(options)),
		validators: make(map[string]validator, len(options)),
	}

	for _, spec := range arguments {
		if spec.Kind != KindPositional {
			return nil, &InvalidParameterSpecError{Name: spec.Name, Reason: "positional arguments must have kind positional"}
		}
		spec = spec.clone()
		if err := r.add(spec); err != nil {
			return nil, err
		}
		r.arguments = append(r.arguments, spec)
	}

	for _, spec := range options {
		if spec.Kind == KindPositional {
			return nil, &InvalidParameterSpecError{Name: spec.Name, Reason: "options cannot have kind positional"}
		}
		spec = spec.clone()
		if err := r.add(spec); err != nil {
			return nil, err
		}
		r.options = append(r.options, spec)
		r.validators[spec.Name] = validatorFor(spec.Kind)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error. It is meant for
// static declarations checked once at process start.
func MustNewRegistry(arguments, options []ParameterSpec) *Registry {
	r, err := NewRegistry(arguments, options)
	if err != nil {
		panic(fmt.Sprintf("arguments: %v", err))
	}
	return r
}

func (r *Registry) add(spec ParameterSpec) error {
	if _, exists := r.byName[spec.Name]; exists {
		return &DuplicateParameterError{Name: spec.Name}
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	r.byName[spec.Name] = spec
	return nil
}

// Validate checks that the declaration is internally consistent.
func (s ParameterSpec) Validate() error {
	if s.Name == "" {
		return &InvalidParameterSpecError{Name: s.Name, Reason: "name must not be empty"}
	}
	if valid, errs := s.Kind.IsValid(); !valid {
		return &InvalidParameterSpecError{Name: s.Name, Reason: errors.Join(errs...).Error()}
	}
	if want := s.Kind.tokenCount(); len(s.Tokens) != want {
		return &InvalidParameterSpecError{
			Name:   s.Name,
			Reason: fmt.Sprintf("kind %s declares %d token(s), got %d", s.Kind, want, len(s.Tokens)),
		}
	}
	if s.Kind == KindChoice && len(s.Choices) == 0 {
		return &InvalidParameterSpecError{Name: s.Name, Reason: "choice parameter has no choices"}
	}
	return nil
}

func (s ParameterSpec) clone() ParameterSpec {
	s.Tokens = slices.Clone(s.Tokens)
	s.Choices = slices.Clone(s.Choices)
	return s
}

// AvailableParameters flattens both tables into one lookup: positional
// parameters map to nil, valued options to their flag token, and toggles
// to their enable and disable tokens.
func (r *Registry) AvailableParameters() map[string][]string {
	params := make(map[string][]string, len(r.byName))
	for _, spec := range r.arguments {
		params[spec.Name] = nil
	}
	for _, spec := range r.options {
		params[spec.Name] = slices.Clone(spec.Tokens)
	}
	return params
}

// Lookup returns the declaration for name.
func (r *Registry) Lookup(name string) (ParameterSpec, bool) {
	spec, ok := r.byName[name]
	if !ok {
		return ParameterSpec{}, false
	}
	return spec.clone(), true
}

// Arguments returns the positional declarations in declared order.
func (r *Registry) Arguments() []ParameterSpec { return cloneSpecs(r.arguments) }

// Options returns the option declarations in declared order.
func (r *Registry) Options() []ParameterSpec { return cloneSpecs(r.options) }

func cloneSpecs(specs []ParameterSpec) []ParameterSpec {
	out := make([]ParameterSpec, len(specs))
	for i, s := range specs {
		out[i] = s.clone()
	}
	return out
}
