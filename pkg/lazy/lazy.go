// SPDX-License-Identifier: MPL-2.0

package lazy

import (
	"encoding/json"
	"maps"
	"slices"
)

type (
	// CoerceFunc builds a concrete value from captured constructor arguments.
	// The slices and maps it receives are copies owned by the callee.
	CoerceFunc func(args []any, kwargs map[string]any) (any, error)

	// Deferred is a captured constructor call. It is immutable once built:
	// With returns a new descriptor and Resolve never mutates the receiver.
	Deferred struct {
		args   []any
		kwargs map[string]any
	}

	// Captured is what Resolve returns when no CoerceFunc is given: the
	// captured arguments, unchanged.
	Captured struct {
		Args   []any          `json:"args"`
		Kwargs map[string]any `json:"kwargs"`
	}
)

// Capture stores the given positional arguments without invoking anything.
func Capture(args ...any) *Deferred {
	return &Deferred{
		args:   slices.Clone(args),
		kwargs: map[string]any{},
	}
}

// CaptureWith stores positional and keyword arguments.
func CaptureWith(args []any, kwargs map[string]any) *Deferred {
	d := Capture(args...)
	maps.Copy(d.kwargs, kwargs)
	return d
}

// With returns a copy of the descriptor with an additional keyword argument.
func (d *Deferred) With(key string, value any) *Deferred {
	next := CaptureWith(d.args, d.kwargs)
	next.kwargs[key] = value
	return next
}

// Args returns a copy of the captured positional arguments.
func (d *Deferred) Args() []any { return slices.Clone(d.args) }

// Kwargs returns a copy of the captured keyword arguments.
func (d *Deferred) Kwargs() map[string]any { return maps.Clone(d.kwargs) }

// Keys returns the keyword argument names in sorted order.
func (d *Deferred) Keys() []string { return slices.Sorted(maps.Keys(d.kwargs)) }

// Kwarg returns a single keyword argument.
func (d *Deferred) Kwarg(key string) (any, bool) {
	v, ok := d.kwargs[key]
	return v, ok
}

// Resolve applies fn to the captured arguments and returns its result.
// With a nil fn the captured arguments are returned as a Captured value.
// Errors from fn are returned unchanged.
func (d *Deferred) Resolve(fn CoerceFunc) (any, error) {
	if fn == nil {
		return d.Captured(), nil
	}
	return fn(d.Args(), d.Kwargs())
}

// Captured returns the captured arguments.
func (d *Deferred) Captured() Captured {
	return Captured{Args: d.Args(), Kwargs: d.Kwargs()}
}

// MarshalJSON renders the descriptor as its captured arguments.
func (d *Deferred) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Captured())
}
