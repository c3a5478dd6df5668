// Package nullable provides a three-state optional value that distinguishes a
// field or variable that was never supplied from one explicitly set to null.
package nullable

import (
	"bytes"

	json "github.com/goccy/go-json"
)

type state uint8

const (
	absent state = iota
	null
	present
)

// Nullable holds exactly one of: absent, null, or a present value.
// The zero value is absent.
type Nullable[T any] struct {
	state state
	value T
}

// Absent returns a value that was never supplied.
func Absent[T any]() Nullable[T] { return Nullable[T]{} }

// Null returns an explicit null.
func Null[T any]() Nullable[T] { return Nullable[T]{state: null} }

// Some wraps a present value.
func Some[T any](v T) Nullable[T] { return Nullable[T]{state: present, value: v} }

// FromPtr maps nil to null and any other pointer to its present value.
func FromPtr[T any](p *T) Nullable[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

func (n Nullable[T]) IsAbsent() bool  { return n.state == absent }
func (n Nullable[T]) IsNull() bool    { return n.state == null }
func (n Nullable[T]) IsPresent() bool { return n.state == present }

// IsZero reports absence so that `omitzero` struct fields drop absent values.
func (n Nullable[T]) IsZero() bool { return n.state == absent }

// Get unwraps the value. Only a present value reports ok.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.state == present
}

// OrElse returns the present value or def.
func (n Nullable[T]) OrElse(def T) T {
	if n.state == present {
		return n.value
	}
	return def
}

// Ptr returns nil unless the value is present.
func (n Nullable[T]) Ptr() *T {
	if n.state != present {
		return nil
	}
	v := n.value
	return &v
}

// Any erases the type parameter, keeping the state.
func (n Nullable[T]) Any() Nullable[any] {
	switch n.state {
	case null:
		return Null[any]()
	case present:
		return Some[any](n.value)
	default:
		return Absent[any]()
	}
}

func (n Nullable[T]) String() string {
	switch n.state {
	case null:
		return "null"
	case present:
		b, err := json.Marshal(n.value)
		if err != nil {
			return "<invalid>"
		}
		return string(b)
	default:
		return "absent"
	}
}

// Map transforms a present value and keeps absent and null as they are.
func Map[T, U any](n Nullable[T], f func(T) U) Nullable[U] {
	switch n.state {
	case null:
		return Null[U]()
	case present:
		return Some(f(n.value))
	default:
		return Absent[U]()
	}
}

// Equal compares state first; values only matter when both are present.
func Equal[T comparable](a, b Nullable[T]) bool {
	if a.state != b.state {
		return false
	}
	return a.state != present || a.value == b.value
}

// MarshalJSON encodes null and absent as JSON null. Containers are expected
// to drop absent entries before encoding.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON decodes JSON null as null and anything else as present.
// A key missing from the input never reaches this method and stays absent.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Some(v)
	return nil
}
