// Package enum wraps GraphQL enum values so that values added to the schema
// after a client was built decode to an unrecognized case instead of failing.
package enum

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Value is implemented by generated enum types.
type Value interface {
	~string
	IsKnown() bool
}

// Enum is either a known case of T or an unrecognized raw string.
// Two Enums compare equal with == iff their raw strings match.
type Enum[T Value] struct {
	raw   string
	known bool
}

// New decodes raw, never failing.
func New[T Value](raw string) Enum[T] {
	return Enum[T]{raw: raw, known: T(raw).IsKnown()}
}

// Known wraps a case of T.
func Known[T Value](v T) Enum[T] { return New[T](string(v)) }

// Unknown builds an unrecognized value carrying raw.
func Unknown[T Value](raw string) Enum[T] { return Enum[T]{raw: raw} }

// Get returns the known case. ok is false for unrecognized values.
func (e Enum[T]) Get() (T, bool) {
	if !e.known {
		var zero T
		return zero, false
	}
	return T(e.raw), true
}

func (e Enum[T]) Raw() string     { return e.raw }
func (e Enum[T]) IsUnknown() bool { return !e.known }

// Is reports whether e is the known case v.
func (e Enum[T]) Is(v T) bool { return e.known && e.raw == string(v) }

func (e Enum[T]) String() string {
	if e.known {
		return e.raw
	}
	return "unrecognized(" + e.raw + ")"
}

// Compare orders by raw string.
func (e Enum[T]) Compare(o Enum[T]) int { return strings.Compare(e.raw, o.raw) }

func (e Enum[T]) MarshalJSON() ([]byte, error) { return json.Marshal(e.raw) }

func (e *Enum[T]) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = New[T](raw)
	return nil
}
