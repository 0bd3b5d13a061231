// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	name?:    string
	timeout?: int & >0
	style?:   "expanded" | "compressed"
	paths?: [...string]
}
`

func mustSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := CompileSchema(testSchema, "#Config")
	if err != nil {
		t.Fatalf("CompileSchema() error = %v", err)
	}
	return s
}

func TestCompileSchema(t *testing.T) {
	t.Parallel()

	if s := mustSchema(t); s.Definition() != "#Config" {
		t.Errorf("Definition() = %q", s.Definition())
	}
	if _, err := CompileSchema(testSchema, "#Missing"); err == nil {
		t.Error("CompileSchema() with an unknown definition should fail")
	}
	if _, err := CompileSchema("#Config: {", "#Config"); err == nil {
		t.Error("CompileSchema() with invalid source should fail")
	}
}

func TestSchema_DecodeBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr string
		check   func(t *testing.T, got map[string]any)
	}{
		{
			name: "valid",
			data: "timeout: 10\nstyle: \"compressed\"\npaths: [\"a\", \"b\"]\n",
			check: func(t *testing.T, got map[string]any) {
				if got["style"] != "compressed" {
					t.Errorf("style = %v", got["style"])
				}
				if paths, ok := got["paths"].([]any); !ok || len(paths) != 2 {
					t.Errorf("paths = %#v", got["paths"])
				}
			},
		},
		{
			name:  "empty",
			data:  "",
			check: func(t *testing.T, got map[string]any) {
				if len(got) != 0 {
					t.Errorf("got %v, want empty", got)
				}
			},
		},
		{name: "unknown field", data: "watch: true\n", wantErr: "config.cue: watch"},
		{name: "bad choice", data: "style: \"nested\"\n", wantErr: "config.cue: style"},
		{name: "bad bound", data: "timeout: 0\n", wantErr: "config.cue: timeout"},
		{name: "syntax error", data: "timeout: {\n", wantErr: "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := mustSchema(t).DecodeBytes([]byte(tt.data), WithFilename("config.cue"))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("DecodeBytes() error = %v, want one containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestSchema_DecodeBytes_SizeLimit(t *testing.T) {
	t.Parallel()

	_, err := mustSchema(t).DecodeBytes([]byte(`name: "flechette"`), WithMaxFileSize(4))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("DecodeBytes() error = %v, want ErrFileTooLarge", err)
	}
}

func TestSchema_DecodeMap(t *testing.T) {
	t.Parallel()

	s := mustSchema(t)
	got, err := s.DecodeMap(map[string]any{"timeout": int64(5), "paths": []any{"x"}}, WithFilename("config.toml"))
	if err != nil {
		t.Fatalf("DecodeMap() error = %v", err)
	}
	if _, ok := got["timeout"]; !ok {
		t.Errorf("DecodeMap() = %v, want timeout kept", got)
	}

	_, err = s.DecodeMap(map[string]any{"style": "nested"}, WithFilename("config.toml"))
	if err == nil || !strings.Contains(err.Error(), "config.toml: style") {
		t.Errorf("DecodeMap() error = %v, want a style error", err)
	}

	_, err = s.DecodeMap(map[string]any{"paths": []any{"x", int64(3)}}, WithFilename("config.toml"))
	if err == nil || !strings.Contains(err.Error(), "paths[1]") {
		t.Errorf("DecodeMap() error = %v, want an indexed path", err)
	}
}
