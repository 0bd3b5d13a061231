// SPDX-License-Identifier: MPL-2.0

package arguments

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ArgumentSet is the rendered command line, without the executable path.
type ArgumentSet struct {
	tokens      []string
	source      string
	destination string
}

// Build validates source and params against the default registry.
func Build(source string, params ...Param) (*ArgumentSet, error) {
	return defaultRegistry.Build(source, params...)
}

// Build validates the caller values and renders them.
//
// Every param name is checked before anything else, so an unknown name
// fails with *UnknownParameterError even when other values are invalid.
// The source must exist; the destination is only normalized. Option tokens
// follow the positional token in the order params were given.
func (r *Registry) Build(source string, params ...Param) (*ArgumentSet, error) {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, repeated := seen[p.Name]; repeated {
			return nil, &RepeatedParameterError{Name: p.Name}
		}
		seen[p.Name] = struct{}{}

		if p.Name == DestinationName {
			continue
		}
		if _, ok := r.validators[p.Name]; !ok {
			return nil, &UnknownParameterError{Name: p.Name}
		}
	}

	src, err := validateSource(source)
	if err != nil {
		return nil, err
	}

	set := &ArgumentSet{source: src}
	var options []string
	for _, p := range params {
		if p.Name == DestinationName {
			dst, err := validateDestination(p.Value)
			if err != nil {
				return nil, err
			}
			set.destination = dst
			continue
		}

		content, err := r.validators[p.Name](r.byName[p.Name], p.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, content...)
	}

	positional := set.source
	if set.destination != "" {
		positional += ":" + set.destination
	}
	set.tokens = append([]string{positional}, options...)

	return set, nil
}

// Tokens returns a copy of the rendered tokens.
func (a *ArgumentSet) Tokens() []string {
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// Len returns the number of tokens.
func (a *ArgumentSet) Len() int { return len(a.tokens) }

// Source returns the validated source path.
func (a *ArgumentSet) Source() string { return a.source }

// Destination returns the normalized destination, empty when none was given.
func (a *ArgumentSet) Destination() string { return a.destination }

// String returns the tokens joined with single spaces.
func (a *ArgumentSet) String() string { return strings.Join(a.tokens, " ") }

// ShellString returns the tokens quoted for a POSIX shell, suitable for
// copy-pasting a dry-run command line.
func (a *ArgumentSet) ShellString() (string, error) {
	return ShellJoin(a.tokens)
}

// ShellJoin quotes and joins tokens for a POSIX shell.
func ShellJoin(tokens []string) (string, error) {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		q, err := syntax.Quote(tok, syntax.LangPOSIX)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}
