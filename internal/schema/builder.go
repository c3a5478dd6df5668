package schema

import (
	"fmt"
	"sort"

	"github.com/hanpama/graphshape/internal/language"
)

// BuildFromSDL parses SDL string and returns the corresponding Schema.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.LoadSchema("schema.graphqls", sdl)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return BuildFromAST(doc), nil
}

// MustBuildFromSDL is BuildFromSDL for package-level registries built from
// embedded SDL.
func MustBuildFromSDL(sdl string) *Schema {
	s, err := BuildFromSDL(sdl)
	if err != nil {
		panic(err)
	}
	return s
}

// BuildFromAST converts a validated gqlparser schema.
func BuildFromAST(doc *language.Schema) *Schema {
	s := &Schema{
		Types:      make(map[string]*Type, len(doc.Types)),
		implements: make(map[string]map[string]struct{}),
	}
	if doc.Query != nil {
		s.QueryType = doc.Query.Name
	}
	if doc.Mutation != nil {
		s.MutationType = doc.Mutation.Name
	}
	if doc.Subscription != nil {
		s.SubscriptionType = doc.Subscription.Name
	}
	if doc.Description != "" {
		s.Description = doc.Description
	}

	for name, def := range doc.Types {
		switch def.Kind {
		case language.Object:
			s.Types[name] = buildComposite(def, TypeKindObject)
		case language.Interface:
			s.Types[name] = buildComposite(def, TypeKindInterface)
		case language.Union:
			s.Types[name] = buildUnion(def)
		case language.Enum:
			s.Types[name] = buildEnum(def)
		case language.InputObject:
			s.Types[name] = buildInput(def)
		case language.Scalar:
			s.Types[name] = &Type{Name: def.Name, Kind: TypeKindScalar, Description: def.Description}
		}
	}

	for name, t := range s.Types {
		if t.Kind == TypeKindObject || t.Kind == TypeKindInterface {
			s.implements[name] = s.interfaceClosure(name, map[string]struct{}{})
		}
	}
	for _, t := range s.Types {
		if t.Kind != TypeKindInterface {
			continue
		}
		for objName, ifaces := range s.implements {
			if s.Types[objName].Kind != TypeKindObject {
				continue
			}
			if _, ok := ifaces[t.Name]; ok {
				t.PossibleTypes = append(t.PossibleTypes, objName)
			}
		}
		sort.Strings(t.PossibleTypes)
	}
	return s
}

func (s *Schema) interfaceClosure(name string, acc map[string]struct{}) map[string]struct{} {
	t, ok := s.Types[name]
	if !ok {
		return acc
	}
	for _, iface := range t.Interfaces {
		if _, seen := acc[iface]; seen {
			continue
		}
		acc[iface] = struct{}{}
		s.interfaceClosure(iface, acc)
	}
	return acc
}

func buildComposite(def *language.Definition, kind TypeKind) *Type {
	t := &Type{Name: def.Name, Kind: kind, Description: def.Description}
	t.Interfaces = append(t.Interfaces, def.Interfaces...)
	sort.Strings(t.Interfaces)
	for _, fd := range def.Fields {
		t.Fields = append(t.Fields, buildField(fd))
	}
	return t
}

func buildField(def *language.FieldDefinition) *Field {
	f := &Field{Name: def.Name, Description: def.Description, Type: buildTypeRef(def.Type)}
	if d := def.Directives.ForName("deprecated"); d != nil {
		f.IsDeprecated = true
		if reason := d.Arguments.ForName("reason"); reason != nil && reason.Value != nil {
			f.DeprecationReason = reason.Value.Raw
		}
	}
	for _, arg := range def.Arguments {
		f.Arguments = append(f.Arguments, &InputValue{
			Name:         arg.Name,
			Description:  arg.Description,
			Type:         buildTypeRef(arg.Type),
			DefaultValue: defaultValue(arg.DefaultValue),
		})
	}
	return f
}

func buildUnion(def *language.Definition) *Type {
	t := &Type{Name: def.Name, Kind: TypeKindUnion, Description: def.Description}
	// Sort union type names for deterministic output
	t.PossibleTypes = append(t.PossibleTypes, def.Types...)
	sort.Strings(t.PossibleTypes)
	return t
}

func buildEnum(def *language.Definition) *Type {
	t := &Type{Name: def.Name, Kind: TypeKindEnum, Description: def.Description}
	for _, v := range def.EnumValues {
		ev := &EnumValue{Name: v.Name, Description: v.Description}
		if d := v.Directives.ForName("deprecated"); d != nil {
			ev.IsDeprecated = true
			if reason := d.Arguments.ForName("reason"); reason != nil && reason.Value != nil {
				ev.DeprecationReason = reason.Value.Raw
			}
		}
		t.EnumValues = append(t.EnumValues, ev)
	}
	return t
}

func buildInput(def *language.Definition) *Type {
	t := &Type{Name: def.Name, Kind: TypeKindInputObject, Description: def.Description}
	for _, fd := range def.Fields {
		t.InputFields = append(t.InputFields, &InputValue{
			Name:         fd.Name,
			Description:  fd.Description,
			Type:         buildTypeRef(fd.Type),
			DefaultValue: defaultValue(fd.DefaultValue),
		})
	}
	return t
}

// BuildTypeRef converts a parsed type reference, e.g. from a variable
// definition.
func BuildTypeRef(t *language.Type) *TypeRef { return buildTypeRef(t) }

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	return ListType(buildTypeRef(t.Elem))
}

func defaultValue(v *language.Value) any {
	if v == nil {
		return nil
	}
	out, err := v.Value(nil)
	if err != nil {
		return v.Raw
	}
	return out
}
