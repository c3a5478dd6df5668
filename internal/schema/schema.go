package schema

import "slices"

// Registry is the read-only view of a schema that shapes consult when
// deciding whether a fragment applies to a concrete response object.
type Registry interface {
	Type(name string) (*Type, bool)
	Satisfies(typename string, condition *Type) bool
	PossibleTypes(abstract string) []string
}

// Schema represents the complete GraphQL schema. It is built once and never
// mutated afterwards; every exported accessor is safe for concurrent use.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Description      string

	// implements holds the transitive interface closure per object/interface.
	implements map[string]map[string]struct{}
}

var _ Registry = (*Schema)(nil)

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// Type looks up a named type.
func (s *Schema) Type(name string) (*Type, bool) {
	t, ok := s.Types[name]
	return t, ok
}

// MustType panics when name is not defined. Intended for package-level
// variables of generated code, where a missing type is a build defect.
func (s *Schema) MustType(name string) *Type {
	t, ok := s.Types[name]
	if !ok {
		panic("schema: unknown type " + name)
	}
	return t
}

// Implements reports whether the object or interface typename implements the
// interface iface, directly or through another interface.
func (s *Schema) Implements(typename, iface string) bool {
	_, ok := s.implements[typename][iface]
	return ok
}

// Satisfies reports whether a response object of concrete type typename
// matches condition: equal names for objects, interface membership for
// interfaces, and member listing for unions. Unknown typenames (types added
// to the server after this schema was captured) satisfy only an identical
// object condition.
func (s *Schema) Satisfies(typename string, condition *Type) bool {
	if condition == nil {
		return true
	}
	if typename == condition.Name {
		return true
	}
	switch condition.Kind {
	case TypeKindInterface:
		return s.Implements(typename, condition.Name)
	case TypeKindUnion:
		return slices.Contains(condition.PossibleTypes, typename)
	default:
		return false
	}
}

// PossibleTypes lists the object types of an interface or union, sorted.
func (s *Schema) PossibleTypes(abstract string) []string {
	t, ok := s.Types[abstract]
	if !ok {
		return nil
	}
	return slices.Clone(t.PossibleTypes)
}

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	Fields        []*Field      // For OBJECT and INTERFACE
	Interfaces    []string      // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes []string      // For INTERFACE and UNION
	EnumValues    []*EnumValue  // For ENUM
	InputFields   []*InputValue // For INPUT_OBJECT
}

// IsAbstract reports interface and union types.
func (t *Type) IsAbstract() bool {
	return t.Kind == TypeKindInterface || t.Kind == TypeKindUnion
}

// Field returns the named field of an object or interface.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// HasEnumValue reports whether raw is a value of this enum type.
func (t *Type) HasEnumValue(raw string) bool {
	for _, v := range t.EnumValues {
		if v.Name == raw {
			return true
		}
	}
	return false
}

// Field represents a field on an object or interface
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	IsDeprecated      bool
	DeprecationReason string
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// Helper functions for TypeRef
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// String renders the reference in SDL notation, e.g. "[Episode]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Named
	}
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue any
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
