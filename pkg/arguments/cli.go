// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"github.com/flechette-insolente/flechette/pkg/lazy"
)

type (
	// Coercers maps coerce types to the constructors a CLI surface uses to
	// build its parameter types.
	Coercers map[CoerceType]lazy.CoerceFunc

	// CLIParameter is a declaration paired with its resolved CLI type.
	// Type is nil for declarations without a type descriptor and a
	// lazy.Captured value for declarations without a coerce type.
	CLIParameter struct {
		Spec ParameterSpec
		Type any
	}
)

// CLIArguments resolves the positional declarations for a CLI surface.
func (r *Registry) CLIArguments(coercers Coercers) ([]CLIParameter, error) {
	return describe(r.arguments, coercers)
}

// CLIOptions resolves the option declarations for a CLI surface.
func (r *Registry) CLIOptions(coercers Coercers) ([]CLIParameter, error) {
	return describe(r.options, coercers)
}

func describe(specs []ParameterSpec, coercers Coercers) ([]CLIParameter, error) {
	params := make([]CLIParameter, 0, len(specs))
	for _, spec := range specs {
		p, err := resolveSpec(spec, coercers)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func resolveSpec(spec ParameterSpec, coercers Coercers) (CLIParameter, error) {
	p := CLIParameter{Spec: spec.clone()}

	var coerce lazy.CoerceFunc
	if spec.CoerceType != "" {
		fn, ok := coercers[spec.CoerceType]
		if !ok {
			return CLIParameter{}, &UnknownCoerceTypeError{Name: spec.Name, CoerceType: spec.CoerceType}
		}
		if spec.Type == nil {
			return CLIParameter{}, &MissingTypeDescriptorError{Name: spec.Name, CoerceType: spec.CoerceType}
		}
		coerce = fn
	}

	if spec.Type == nil {
		return p, nil
	}

	typ, err := spec.Type.Resolve(coerce)
	if err != nil {
		return CLIParameter{}, err
	}
	p.Type = typ
	return p, nil
}
