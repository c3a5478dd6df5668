// Package datadict implements the shared field container that every typed
// shape reads from.
//
// A DataDict holds one GraphQL response object's values keyed by response key
// (alias or field name) together with the set of shapes the object is known
// to fulfill. Containers are immutable once built; derivations with With
// layer a single change over the original storage instead of copying it.
//
// Reads go through Decoders, which perform a checked conversion from the
// stored Value to the Go type an accessor expects and report
// ErrDecodeMismatch when the stored kind disagrees.
package datadict

import (
	json "github.com/goccy/go-json"
)

// TypenameKey is the response key of the __typename meta field.
const TypenameKey = "__typename"

// maxLayers bounds the copy-on-write chain before With flattens it.
const maxLayers = 8

// DataDict is an immutable, shareable field container.
type DataDict struct {
	fields    map[string]Value // absent values in an upper layer shadow the key
	base      *DataDict
	layers    int
	fulfilled *fulfilledSet
}

// New builds a container from literal values. Absent values are dropped.
// The fulfilled ids are recorded as already satisfied.
func New(fields map[string]Value, fulfilled ...ShapeID) *DataDict {
	own := make(map[string]Value, len(fields))
	for k, v := range fields {
		if v.IsAbsent() {
			continue
		}
		own[k] = v
	}
	d := &DataDict{fields: own, fulfilled: newFulfilledSet()}
	d.fulfilled.add(fulfilled...)
	return d
}

// FromTree wraps a decoded response object. Nested maps become nested
// containers and arrays become lists; nothing of the input is retained.
func FromTree(tree map[string]any) (*DataDict, error) {
	fields := make(map[string]Value, len(tree))
	for k, raw := range tree {
		v, err := fromAny(raw)
		if err != nil {
			return nil, prependPath(err, k)
		}
		fields[k] = v
	}
	return &DataDict{fields: fields, fulfilled: newFulfilledSet()}, nil
}

func (d *DataDict) lookup(key string) Value {
	for cur := d; cur != nil; cur = cur.base {
		if v, ok := cur.fields[key]; ok {
			return v
		}
	}
	return Value{}
}

// Get returns the value stored at key, or the absent Value.
func (d *DataDict) Get(key string) Value {
	if d == nil {
		return Value{}
	}
	return d.lookup(key)
}

// Has reports whether key is present (null counts as present).
func (d *DataDict) Has(key string) bool { return !d.Get(key).IsAbsent() }

// Typename returns the __typename recorded for the object.
func (d *DataDict) Typename() (string, bool) {
	s, ok := d.Get(TypenameKey).scalar.(string)
	return s, ok
}

// Keys returns the present keys in sorted order.
func (d *DataDict) Keys() []string {
	if d == nil {
		return nil
	}
	return sortedKeys(d.flatten())
}

// Len returns the number of present keys.
func (d *DataDict) Len() int {
	if d == nil {
		return 0
	}
	if d.base == nil {
		return len(d.fields)
	}
	return len(d.flatten())
}

func (d *DataDict) flatten() map[string]Value {
	if d.base == nil {
		return d.fields
	}
	out := make(map[string]Value)
	seen := make(map[string]struct{})
	for cur := d; cur != nil; cur = cur.base {
		for k, v := range cur.fields {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !v.IsAbsent() {
				out[k] = v
			}
		}
	}
	return out
}

// With derives a container that differs from d by one key. Setting the absent
// Value removes the key. Unchanged keys are shared with d.
//
// The derived container starts from a snapshot of d's fulfilled set. Writing
// null, removing a key, or changing the kind of its value clears the set.
func (d *DataDict) With(key string, v Value) *DataDict {
	old := d.Get(key)
	next := &DataDict{
		fields: map[string]Value{key: v},
		base:   d,
		layers: d.layers + 1,
	}
	if v.IsNull() || v.Kind() != old.Kind() {
		next.fulfilled = newFulfilledSet()
	} else {
		next.fulfilled = d.fulfilled.clone()
	}
	if next.layers >= maxLayers {
		next.fields = next.flatten()
		next.base = nil
		next.layers = 0
	}
	return next
}

// IsFulfilled reports whether the container is known to satisfy shape id.
func (d *DataDict) IsFulfilled(id ShapeID) bool {
	return d != nil && d.fulfilled.contains(id)
}

// MarkFulfilled records ids as satisfied. It is the only mutation a container
// allows after construction and is safe for concurrent use.
func (d *DataDict) MarkFulfilled(ids ...ShapeID) {
	d.fulfilled.add(ids...)
}

// Fulfilled returns a sorted snapshot of the fulfilled ids.
func (d *DataDict) Fulfilled() []ShapeID {
	if d == nil {
		return nil
	}
	return d.fulfilled.snapshot()
}

// ToTree converts the container back to a plain decoded tree.
func (d *DataDict) ToTree() map[string]any {
	if d == nil {
		return nil
	}
	fields := d.flatten()
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v.Any()
	}
	return out
}

// Equal compares present keys and values; fulfilled sets are ignored.
func (d *DataDict) Equal(o *DataDict) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil {
		return false
	}
	a, b := d.flatten(), o.flatten()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (d *DataDict) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToTree())
}
