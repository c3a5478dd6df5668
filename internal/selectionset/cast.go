package selectionset

import (
	"fmt"

	"github.com/hanpama/graphshape/internal/datadict"
)

// Get reads key from shape through dec. Reading a key outside typ's
// selection list fails with ErrUndeclaredField.
func Get[S Shape, T any](shape S, typ *Type[S], key string, dec datadict.Decoder[T]) (T, error) {
	if !typ.d.declares(key) {
		var zero T
		return zero, undeclared(typ.d.name, key)
	}
	return datadict.Field(shape.DataDict(), key, dec)
}

// Wrap views dict as S, validating it on first use.
func Wrap[S Shape](typ *Type[S], dict *datadict.DataDict) (S, error) {
	if dict == nil {
		var zero S
		return zero, &datadict.DecodeError{Expected: typ.d.name, Actual: "null"}
	}
	if !dict.IsFulfilled(typ.d.id) {
		v := &violations{}
		ids := typ.d.validate(dict, v, false)
		if !v.empty() {
			var zero S
			return zero, fmt.Errorf("%s: %w", typ.d.name, v.err.ErrorOrNil())
		}
		dict.MarkFulfilled(ids...)
	}
	return typ.wrap(dict), nil
}

// Decode wraps a raw response object as S.
func Decode[S Shape](typ *Type[S], tree map[string]any) (S, error) {
	dict, err := datadict.FromTree(tree)
	if err != nil {
		var zero S
		return zero, err
	}
	return Wrap(typ, dict)
}

// Object decodes a nested response object as S.
func Object[S Shape](typ *Type[S]) datadict.Decoder[S] {
	return func(v datadict.Value) (S, error) {
		dict, err := datadict.Dict(v)
		if err != nil {
			var zero S
			return zero, err
		}
		return Wrap(typ, dict)
	}
}

// As casts parent to the inline fragment typ. It returns ok false when the
// container's concrete type does not satisfy typ's condition, and a
// *FragmentError when it does but required fields are missing.
func As[S Shape](parent Shape, typ *Type[S]) (S, bool, error) {
	return cast(parent.DataDict(), typ.d.root, typ)
}

// FragmentContainer exposes the named fragments spread into a shape.
type FragmentContainer struct {
	dict  *datadict.DataDict
	scope *descriptor
}

// Fragments returns the fragment container of shape.
func Fragments[S Shape](shape S, typ *Type[S]) FragmentContainer {
	return FragmentContainer{dict: shape.DataDict(), scope: typ.d}
}

func (fc FragmentContainer) DataDict() *datadict.DataDict { return fc.dict }

// ToFragment casts the container to the named fragment typ with the same
// rules as As.
func ToFragment[S Shape](fc FragmentContainer, typ *Type[S]) (S, bool, error) {
	return cast(fc.dict, fc.scope, typ)
}

func cast[S Shape](dict *datadict.DataDict, scope *descriptor, typ *Type[S]) (S, bool, error) {
	var zero S
	if dict == nil {
		return zero, false, nil
	}
	typename, _ := dict.Typename()
	if scope != nil {
		typename = scope.typename(dict)
	}
	if !applies(typename, scope, typ.d) {
		return zero, false, nil
	}
	if dict.IsFulfilled(typ.d.id) {
		return typ.wrap(dict), true, nil
	}
	v := &violations{}
	ids := typ.d.validate(dict, v, false)
	if !v.empty() {
		return zero, true, &FragmentError{
			Fragment: typ.d.name,
			Typename: typename,
			Missing:  v.missing,
			Err:      v.err.ErrorOrNil(),
		}
	}
	dict.MarkFulfilled(ids...)
	return typ.wrap(dict), true, nil
}

// applies reports whether a fragment whose condition is cond.parent applies
// to an object of concrete type typename viewed through scope.
func applies(typename string, scope, cond *descriptor) bool {
	if scope != nil && scope.implies(cond) {
		return true
	}
	if typename == "" {
		return false
	}
	return cond.registry.Satisfies(typename, cond.parent)
}

// implies reports whether every object d applies to also satisfies the
// condition of cond.
func (d *descriptor) implies(cond *descriptor) bool {
	return d.parent.Name == cond.parent.Name || cond.registry.Satisfies(d.parent.Name, cond.parent)
}

// validate checks d's selections against dict and returns the ids of d and
// of every nested fragment it checked. Missing keys are reported to v; the
// returned ids are only meaningful when v stays empty. Fragments implied by
// d's own parent type are part of d. Unless strict, type-conditional
// fragments are skipped and left for a later cast.
func (d *descriptor) validate(dict *datadict.DataDict, v *violations, strict bool) []datadict.ShapeID {
	ids := []datadict.ShapeID{d.id}
	typename := d.typename(dict)
	for _, sel := range d.selections {
		switch sel.Kind {
		case SelectionField:
			if !sel.Type.IsNonNull() {
				continue
			}
			key := sel.ResponseKey()
			val := dict.Get(key)
			switch {
			case val.IsAbsent():
				v.add(datadict.Path{key}, sel.Type.String(), "absent")
			case val.IsNull():
				v.add(datadict.Path{key}, sel.Type.String(), "null")
			}
		case SelectionInlineFragment, SelectionFragmentSpread:
			child := sel.Shape.desc()
			if !applies(typename, d, child) || dict.IsFulfilled(child.id) {
				continue
			}
			if !strict && !d.implies(child) {
				continue // checked on the first cast
			}
			nested := &violations{}
			childIDs := child.validate(dict, nested, strict)
			if !nested.empty() {
				v.merge(nested)
				continue
			}
			ids = append(ids, childIDs...)
		}
	}
	return ids
}
