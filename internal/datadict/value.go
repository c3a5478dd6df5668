package datadict

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Kind discriminates the cases of Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindScalar
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is one decoded response value. The zero Value is absent and is never
// stored inside a DataDict.
//
// Scalars hold string, bool, int64, float64, json.Number, or an opaque custom
// scalar token.
type Value struct {
	kind   Kind
	scalar any
	list   []Value
	object *DataDict
}

func NullValue() Value               { return Value{kind: KindNull} }
func StringValue(s string) Value     { return Value{kind: KindScalar, scalar: s} }
func IntValue(i int) Value           { return Value{kind: KindScalar, scalar: int64(i)} }
func FloatValue(f float64) Value     { return Value{kind: KindScalar, scalar: f} }
func BoolValue(b bool) Value         { return Value{kind: KindScalar, scalar: b} }
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }

// ScalarValue stores a custom scalar token as is. A nil token is null.
func ScalarValue(token any) Value {
	if token == nil {
		return NullValue()
	}
	return Value{kind: KindScalar, scalar: token}
}

// ObjectValue nests a container. A nil container is null.
func ObjectValue(d *DataDict) Value {
	if d == nil {
		return NullValue()
	}
	return Value{kind: KindObject, object: d}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) Scalar() (any, bool) {
	return v.scalar, v.kind == KindScalar
}
func (v Value) List() ([]Value, bool) {
	return v.list, v.kind == KindList
}
func (v Value) Object() (*DataDict, bool) {
	return v.object, v.kind == KindObject
}

// Any converts v back to the untyped tree form.
func (v Value) Any() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Any()
		}
		return out
	case KindObject:
		return v.object.ToTree()
	default:
		return nil
	}
}

// Equal compares structurally. Fulfilled sets of nested containers are ignored.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return scalarEqual(v.scalar, o.scalar)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.object.Equal(o.object)
	default:
		return true
	}
}

func scalarEqual(a, b any) bool {
	if an, ok := numeric(a); ok {
		bn, ok := numeric(b)
		return ok && an == bn
	}
	switch a.(type) {
	case string, bool:
		return a == b
	}
	ab, aerr := json.Marshal(a)
	bb, berr := json.Marshal(b)
	return aerr == nil && berr == nil && string(ab) == string(bb)
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindNull:
		return "null"
	}
	b, err := json.Marshal(v.Any())
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(b)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// fromAny converts one node of a decoded JSON tree.
func fromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case *DataDict:
		return ObjectValue(x), nil
	case string, bool, float64, json.Number:
		return Value{kind: KindScalar, scalar: x}, nil
	case float32:
		return FloatValue(float64(x)), nil
	case int:
		return Value{kind: KindScalar, scalar: int64(x)}, nil
	case int32:
		return Value{kind: KindScalar, scalar: int64(x)}, nil
	case int64:
		return Value{kind: KindScalar, scalar: x}, nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := fromAny(item)
			if err != nil {
				return Value{}, prependPath(err, i)
			}
			items[i] = v
		}
		return ListValue(items...), nil
	case map[string]any:
		d, err := FromTree(x)
		if err != nil {
			return Value{}, err
		}
		return ObjectValue(d), nil
	default:
		return Value{}, &DecodeError{Expected: "JSON value", Actual: fmt.Sprintf("%T", raw)}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
