package datadict

import (
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/hanpama/graphshape/internal/enum"
	"github.com/hanpama/graphshape/internal/nullable"
)

// Decoder converts a stored Value to the Go type an accessor declares.
// Decoders for non-null types reject absent and null values.
type Decoder[T any] func(Value) (T, error)

// Field reads key from d and converts it with dec. Failures carry the key in
// their path.
func Field[T any](d *DataDict, key string, dec Decoder[T]) (T, error) {
	out, err := dec(d.Get(key))
	if err != nil {
		var zero T
		return zero, prependPath(err, key)
	}
	return out, nil
}

var String Decoder[string] = func(v Value) (string, error) {
	if s, ok := v.scalar.(string); ok && v.kind == KindScalar {
		return s, nil
	}
	return "", mismatch("String!", v)
}

// ID accepts strings and integral numbers; both serialize as GraphQL IDs.
var ID Decoder[string] = func(v Value) (string, error) {
	if v.kind == KindScalar {
		switch x := v.scalar.(type) {
		case string:
			return x, nil
		case int64:
			return strconv.FormatInt(x, 10), nil
		case json.Number:
			if _, err := x.Int64(); err == nil {
				return x.String(), nil
			}
		}
	}
	return "", mismatch("ID!", v)
}

var Int Decoder[int] = func(v Value) (int, error) {
	if v.kind == KindScalar {
		switch x := v.scalar.(type) {
		case int64:
			if x >= math.MinInt32 && x <= math.MaxInt32 {
				return int(x), nil
			}
		case float64:
			if x == math.Trunc(x) && x >= math.MinInt32 && x <= math.MaxInt32 {
				return int(x), nil
			}
		case json.Number:
			if i, err := x.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
				return int(i), nil
			}
		}
	}
	return 0, mismatch("Int!", v)
}

var Float Decoder[float64] = func(v Value) (float64, error) {
	if v.kind == KindScalar {
		if f, ok := numeric(v.scalar); ok {
			return f, nil
		}
	}
	return 0, mismatch("Float!", v)
}

var Bool Decoder[bool] = func(v Value) (bool, error) {
	if b, ok := v.scalar.(bool); ok && v.kind == KindScalar {
		return b, nil
	}
	return false, mismatch("Boolean!", v)
}

// Custom returns the raw token of a custom scalar.
var Custom Decoder[any] = func(v Value) (any, error) {
	if v.kind != KindScalar {
		return nil, mismatch("custom scalar", v)
	}
	return v.scalar, nil
}

// Dict returns a nested container.
var Dict Decoder[*DataDict] = func(v Value) (*DataDict, error) {
	if v.kind != KindObject {
		return nil, mismatch("object", v)
	}
	return v.object, nil
}

// Enum decodes a string into a forward-compatible enum. Unknown raw values
// never fail.
func Enum[T enum.Value]() Decoder[enum.Enum[T]] {
	return func(v Value) (enum.Enum[T], error) {
		s, ok := v.scalar.(string)
		if !ok || v.kind != KindScalar {
			return enum.Enum[T]{}, mismatch("enum", v)
		}
		return enum.New[T](s), nil
	}
}

// ListOf decodes a non-null list whose elements are decoded with item.
func ListOf[T any](item Decoder[T]) Decoder[[]T] {
	return func(v Value) ([]T, error) {
		if v.kind != KindList {
			return nil, mismatch("list", v)
		}
		out := make([]T, len(v.list))
		for i, elem := range v.list {
			x, err := item(elem)
			if err != nil {
				return nil, prependPath(err, i)
			}
			out[i] = x
		}
		return out, nil
	}
}

// Optional lifts a decoder to a nullable type: absent and null map to their
// own states instead of failing.
func Optional[T any](dec Decoder[T]) Decoder[nullable.Nullable[T]] {
	return func(v Value) (nullable.Nullable[T], error) {
		switch v.kind {
		case KindAbsent:
			return nullable.Absent[T](), nil
		case KindNull:
			return nullable.Null[T](), nil
		}
		x, err := dec(v)
		if err != nil {
			return nullable.Nullable[T]{}, err
		}
		return nullable.Some(x), nil
	}
}

// Encoders used by the construction path.

// FromOptional encodes n with enc; absent stays absent and null stays null.
func FromOptional[T any](n nullable.Nullable[T], enc func(T) Value) Value {
	switch {
	case n.IsNull():
		return NullValue()
	case n.IsPresent():
		v, _ := n.Get()
		return enc(v)
	default:
		return Value{}
	}
}

// FromList encodes every item with enc.
func FromList[T any](items []T, enc func(T) Value) Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = enc(item)
	}
	return ListValue(out...)
}

// FromEnum stores the raw string, known or not.
func FromEnum[T enum.Value](e enum.Enum[T]) Value { return StringValue(e.Raw()) }
