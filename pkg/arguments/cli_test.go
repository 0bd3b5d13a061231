// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"errors"
	"reflect"
	"testing"

	"github.com/flechette-insolente/flechette/pkg/lazy"
)

type fakeChoice struct{ values []any }

type fakePath struct{ kwargs map[string]any }

func fakeCoercers() Coercers {
	return Coercers{
		CoerceChoice: func(args []any, _ map[string]any) (any, error) {
			return fakeChoice{values: args}, nil
		},
		CoercePath: func(_ []any, kwargs map[string]any) (any, error) {
			return fakePath{kwargs: kwargs}, nil
		},
	}
}

func TestCLIOptions_ResolvesCoerceTypes(t *testing.T) {
	t.Parallel()

	params, err := Default().CLIOptions(fakeCoercers())
	if err != nil {
		t.Fatalf("CLIOptions() error = %v", err)
	}
	if len(params) != 4 {
		t.Fatalf("len(params) = %d, want 4", len(params))
	}

	style, ok := params[0].Type.(fakeChoice)
	if !ok {
		t.Fatalf("style Type = %T, want fakeChoice", params[0].Type)
	}
	if !reflect.DeepEqual(style.values, []any{"expanded", "compressed"}) {
		t.Errorf("style choices = %v", style.values)
	}

	loadPaths, ok := params[1].Type.(fakePath)
	if !ok {
		t.Fatalf("load_paths Type = %T, want fakePath", params[1].Type)
	}
	if loadPaths.kwargs["exists"] != true || loadPaths.kwargs["file_okay"] != false {
		t.Errorf("load_paths kwargs = %v", loadPaths.kwargs)
	}

	// Toggles carry no type descriptor.
	if params[2].Type != nil || params[3].Type != nil {
		t.Errorf("toggle types = %v, %v, want nil", params[2].Type, params[3].Type)
	}
}

func TestCLIArguments_ResolvesPaths(t *testing.T) {
	t.Parallel()

	params, err := Default().CLIArguments(fakeCoercers())
	if err != nil {
		t.Fatalf("CLIArguments() error = %v", err)
	}
	if len(params) != 2 {
		t.Fatalf("len(params) = %d, want 2", len(params))
	}
	src := params[0].Type.(fakePath)
	dst := params[1].Type.(fakePath)
	if src.kwargs["exists"] != true {
		t.Errorf("source exists = %v, want true", src.kwargs["exists"])
	}
	if _, ok := dst.kwargs["exists"]; ok {
		t.Error("destination must not require existence")
	}
	if !params[0].Spec.Required || params[1].Spec.Required {
		t.Error("only source should be required")
	}
}

func TestCLIOptions_UnknownCoerceType(t *testing.T) {
	t.Parallel()

	_, err := Default().CLIOptions(Coercers{CoercePath: fakeCoercers()[CoercePath]})
	var coerceErr *UnknownCoerceTypeError
	if !errors.As(err, &coerceErr) {
		t.Fatalf("CLIOptions() error = %v, want *UnknownCoerceTypeError", err)
	}
	if coerceErr.Name != StyleName || coerceErr.CoerceType != CoerceChoice {
		t.Errorf("error = %+v", coerceErr)
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Error("error should wrap ErrConfiguration")
	}
}

func TestCLIOptions_MissingTypeDescriptor(t *testing.T) {
	t.Parallel()

	reg := MustNewRegistry(nil, []ParameterSpec{
		{Name: "x", Kind: KindPath, Tokens: []string{"--x"}, CoerceType: CoercePath},
	})
	_, err := reg.CLIOptions(fakeCoercers())
	var missingErr *MissingTypeDescriptorError
	if !errors.As(err, &missingErr) {
		t.Fatalf("CLIOptions() error = %v, want *MissingTypeDescriptorError", err)
	}
}

func TestCLIOptions_NoCoerceTypeKeepsCapturedArguments(t *testing.T) {
	t.Parallel()

	reg := MustNewRegistry(nil, []ParameterSpec{
		{Name: "x", Kind: KindPath, Tokens: []string{"--x"}, Type: lazy.Capture("raw")},
	})
	params, err := reg.CLIOptions(nil)
	if err != nil {
		t.Fatalf("CLIOptions() error = %v", err)
	}
	want := lazy.Captured{Args: []any{"raw"}, Kwargs: map[string]any{}}
	if !reflect.DeepEqual(params[0].Type, want) {
		t.Errorf("Type = %#v, want %#v", params[0].Type, want)
	}
}

func TestCLIOptions_CoerceErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("no such type")
	coercers := fakeCoercers()
	coercers[CoerceChoice] = func([]any, map[string]any) (any, error) { return nil, sentinel }

	if _, err := Default().CLIOptions(coercers); !errors.Is(err, sentinel) {
		t.Errorf("CLIOptions() error = %v, want sentinel", err)
	}
}
