// Package field provides validated value objects for contact data.
//
// A Field always holds a value accepted by its predicate: construction
// fails outright on invalid input, and Set on an existing field leaves the
// stored value untouched when the new value is rejected.
package field

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("field: validation failed")

// ValidationError reports a value rejected by a field predicate.
type ValidationError struct {
	Kind  string // Field kind, e.g. "phone" or "birthday".
	Value string // Textual form of the rejected value.
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field: invalid %s %q", e.Kind, e.Value)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Predicate reports whether a raw value is acceptable for a field.
type Predicate[T any] func(T) bool

// Field wraps a single value that always satisfies its predicate.
type Field[T any] struct {
	kind  string
	value T
	valid Predicate[T]
}

// New constructs a Field, failing with a *ValidationError if valid rejects v.
// A nil predicate accepts every value.
func New[T any](kind string, v T, valid Predicate[T]) (Field[T], error) {
	f := Field[T]{kind: kind, valid: valid}
	if !f.accepts(v) {
		return Field[T]{}, f.reject(v)
	}
	f.value = v
	return f, nil
}

// Value returns the stored value.
func (f Field[T]) Value() T {
	return f.value
}

// Set replaces the stored value after re-checking the predicate.
// On failure the previous value is kept.
func (f *Field[T]) Set(v T) error {
	if !f.accepts(v) {
		return f.reject(v)
	}
	f.value = v
	return nil
}

// String renders the stored value's textual form.
func (f Field[T]) String() string {
	return fmt.Sprint(f.value)
}

func (f Field[T]) accepts(v T) bool {
	return f.valid == nil || f.valid(v)
}

func (f Field[T]) reject(v T) error {
	return &ValidationError{Kind: f.kind, Value: render(v)}
}

// render formats v for error messages, dereferencing optional strings.
func render(v any) string {
	switch s := v.(type) {
	case *string:
		if s == nil {
			return "None"
		}
		return *s
	default:
		return fmt.Sprint(v)
	}
}
