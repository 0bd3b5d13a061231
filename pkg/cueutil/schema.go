// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is a compiled CUE definition. It is not safe for concurrent use.
type Schema struct {
	ctx        *cue.Context
	definition cue.Value
	path       string
}

// CompileSchema compiles src and looks up definition (e.g. "#Config").
func CompileSchema(src, definition string) (*Schema, error) {
	ctx := cuecontext.New()

	root := ctx.CompileString(src)
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", root.Err())
	}

	def := root.LookupPath(cue.ParsePath(definition))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", definition, def.Err())
	}

	return &Schema{ctx: ctx, definition: def, path: definition}, nil
}

// Definition returns the definition path the schema validates against.
func (s *Schema) Definition() string { return s.path }

// DecodeBytes compiles CUE source, validates it and decodes it to a map.
func (s *Schema) DecodeBytes(data []byte, opts ...Option) (map[string]any, error) {
	o := applyOptions(opts)
	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	value := s.ctx.CompileBytes(data, cue.Filename(o.filename))
	if value.Err() != nil {
		return nil, FormatError(value.Err(), o.filename)
	}
	return s.decode(value, o)
}

// DecodeMap validates values decoded from another format and returns them
// as the schema sees them.
func (s *Schema) DecodeMap(values map[string]any, opts ...Option) (map[string]any, error) {
	o := applyOptions(opts)

	value := s.ctx.Encode(values)
	if value.Err() != nil {
		return nil, FormatError(value.Err(), o.filename)
	}
	return s.decode(value, o)
}

func (s *Schema) decode(value cue.Value, o options) (map[string]any, error) {
	unified := s.definition.Unify(value)
	if err := unified.Validate(); err != nil {
		return nil, FormatError(err, o.filename)
	}

	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
