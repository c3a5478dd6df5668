package selectionset

import (
	"github.com/hanpama/graphshape/internal/schema"
)

// SelectionKind discriminates the cases of Selection.
type SelectionKind uint8

const (
	SelectionField SelectionKind = iota
	SelectionInlineFragment
	SelectionFragmentSpread
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionField:
		return "field"
	case SelectionInlineFragment:
		return "inline fragment"
	case SelectionFragmentSpread:
		return "fragment spread"
	default:
		return "unknown"
	}
}

// Selection is one entry of a shape's selection list.
//
// Fields carry their declared type and, for composite fields, the nested
// shape. Inline fragments and fragment spreads carry the shape whose parent
// type is the type condition.
type Selection struct {
	Kind      SelectionKind
	Name      string
	Alias     string
	Type      *schema.TypeRef
	Arguments map[string]any
	Shape     Descriptor
}

// Field selects a field by name.
func Field(name string, typ *schema.TypeRef) Selection {
	return Selection{Kind: SelectionField, Name: name, Type: typ}
}

// AliasedField selects name under the response key alias.
func AliasedField(alias, name string, typ *schema.TypeRef) Selection {
	return Selection{Kind: SelectionField, Name: name, Alias: alias, Type: typ}
}

// InlineFragment selects d under d's parent type as the type condition.
func InlineFragment(d Descriptor) Selection {
	return Selection{Kind: SelectionInlineFragment, Shape: d}
}

// FragmentSpread spreads the named fragment d.
func FragmentSpread(d Descriptor) Selection {
	return Selection{Kind: SelectionFragmentSpread, Name: d.Name(), Shape: d}
}

// WithShape attaches the nested shape of a composite field.
func (s Selection) WithShape(d Descriptor) Selection {
	s.Shape = d
	return s
}

// Variable refers to an operation variable inside field arguments.
type Variable string

// WithArguments records the arguments of a field. Values are literals or
// Variables.
func (s Selection) WithArguments(args map[string]any) Selection {
	s.Arguments = args
	return s
}

// ResponseKey is the key the field's value is stored under.
func (s Selection) ResponseKey() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}
