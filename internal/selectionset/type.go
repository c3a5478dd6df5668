// Package selectionset implements typed shapes over shared field containers.
//
// A shape is a thin value type holding a *datadict.DataDict. Its static
// descriptor, a *Type, records the parent GraphQL type, the selection list and
// the wrap constructor. Every accessor, cast, and constructor in generated
// code goes through the generic routines of this package, so the same
// container can be viewed through any number of selection sets, fragments and
// inline fragments without being copied or decoded again.
//
// Casting to a fragment is lazy. The first successful cast validates the
// fragment's selections against the container and records the fragment in the
// container's fulfilled set; later casts only consult the set.
package selectionset

import (
	"fmt"

	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/schema"
)

// Shape is implemented by every generated selection set, fragment, and inline
// fragment.
type Shape interface {
	DataDict() *datadict.DataDict
}

// Descriptor is the untyped view of a *Type, used inside selection lists.
type Descriptor interface {
	ID() datadict.ShapeID
	Name() string
	Parent() *schema.Type
	Selections() []Selection
	FragmentDefinition() string
	desc() *descriptor
}

// Definition holds the static description of a shape.
type Definition struct {
	// Name identifies the shape in errors and logs, e.g. "HeroQuery.Data.Hero".
	Name string
	// Parent is the object, interface, or union type the selections apply to.
	// For inline fragments and fragments it is the type condition.
	Parent *schema.Type
	Schema schema.Registry
	// Selections lists the shape's fields and fragments. Fields of fragments
	// whose condition Parent already satisfies are declared by the shape too,
	// and an inline fragment also declares the fields of its enclosing shape.
	Selections []Selection
	// FragmentDefinition is the document text of a named fragment.
	FragmentDefinition string
}

type descriptor struct {
	id         datadict.ShapeID
	name       string
	parent     *schema.Type
	registry   schema.Registry
	selections []Selection
	fragment   string
	declared   map[string]Selection

	// root is the shape an inline fragment was declared in; set when the
	// enclosing type is built.
	root *descriptor
}

// Type is the static descriptor of shape S.
type Type[S Shape] struct {
	d    *descriptor
	wrap func(*datadict.DataDict) S
}

// NewType builds the descriptor for S. wrap must only store the container.
// It panics on definitions that no generated code can produce: a missing
// parent type or registry, or two selections for one response key.
func NewType[S Shape](def Definition, wrap func(*datadict.DataDict) S) *Type[S] {
	if def.Parent == nil || def.Schema == nil {
		panic(fmt.Sprintf("selectionset: %s: parent type and schema are required", def.Name))
	}
	d := &descriptor{
		id:         datadict.NewShapeID(),
		name:       def.Name,
		parent:     def.Parent,
		registry:   def.Schema,
		selections: def.Selections,
		fragment:   def.FragmentDefinition,
		declared:   make(map[string]Selection, len(def.Selections)),
	}
	for _, sel := range def.Selections {
		switch sel.Kind {
		case SelectionField:
			key := sel.ResponseKey()
			if _, dup := d.declared[key]; dup {
				panic(fmt.Sprintf("selectionset: %s: duplicate response key %q", def.Name, key))
			}
			d.declared[key] = sel
		case SelectionInlineFragment:
			if child := sel.Shape.desc(); child.root == nil {
				child.root = d
			}
		}
	}
	// Fields of fragments implied by the parent type are readable through
	// the shape itself.
	for _, sel := range def.Selections {
		if sel.Kind == SelectionField {
			continue
		}
		child := sel.Shape.desc()
		if !d.implies(child) {
			continue
		}
		for key, field := range child.declared {
			if _, ok := d.declared[key]; !ok {
				d.declared[key] = field
			}
		}
	}
	for _, sel := range def.Selections {
		if sel.Kind != SelectionInlineFragment {
			continue
		}
		if child := sel.Shape.desc(); child.root == d {
			child.inherit(d.declared)
		}
	}
	return &Type[S]{d: d, wrap: wrap}
}

// inherit declares the enclosing shape's fields on an inline fragment and on
// the inline fragments nested in it. The fragment's own selections win.
func (d *descriptor) inherit(fields map[string]Selection) {
	for key, sel := range fields {
		if _, ok := d.declared[key]; !ok {
			d.declared[key] = sel
		}
	}
	for _, sel := range d.selections {
		if sel.Kind != SelectionInlineFragment {
			continue
		}
		if child := sel.Shape.desc(); child.root == d {
			child.inherit(fields)
		}
	}
}

func (t *Type[S]) ID() datadict.ShapeID       { return t.d.id }
func (t *Type[S]) Name() string               { return t.d.name }
func (t *Type[S]) Parent() *schema.Type       { return t.d.parent }
func (t *Type[S]) Selections() []Selection    { return t.d.selections }
func (t *Type[S]) FragmentDefinition() string { return t.d.fragment }
func (t *Type[S]) desc() *descriptor          { return t.d }

// Declares reports whether key is a response key of the shape. __typename is
// always declared.
func (t *Type[S]) Declares(key string) bool { return t.d.declares(key) }

func (d *descriptor) declares(key string) bool {
	if key == datadict.TypenameKey {
		return true
	}
	_, ok := d.declared[key]
	return ok
}

// typename resolves the concrete type of dict, falling back to the parent
// type when it is an object.
func (d *descriptor) typename(dict *datadict.DataDict) string {
	if name, ok := dict.Typename(); ok {
		return name
	}
	if d.parent.Kind == schema.TypeKindObject {
		return d.parent.Name
	}
	return ""
}
