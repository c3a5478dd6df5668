// Package starwarsapi holds the typed shapes, fragments and operations of the
// Star Wars example schema.
package starwarsapi

import (
	_ "embed"

	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/operation"
	"github.com/hanpama/graphshape/internal/schema"
	"github.com/hanpama/graphshape/internal/selectionset"
)

//go:embed schema.graphqls
var schemaSDL string

// Schema is the Star Wars schema, built once at startup.
var Schema = schema.MustBuildFromSDL(schemaSDL)

var (
	queryType     = Schema.MustType("Query")
	mutationType  = Schema.MustType("Mutation")
	characterType = Schema.MustType("Character")
	humanType     = Schema.MustType("Human")
	droidType     = Schema.MustType("Droid")
	reviewType    = Schema.MustType("Review")
)

var (
	typename       = schema.NonNullType(schema.NamedType("String"))
	characterRef   = schema.NamedType("Character")
	characterList  = schema.ListType(schema.NamedType("Character"))
	nonNullID      = schema.NonNullType(schema.NamedType("ID"))
	nonNullString  = schema.NonNullType(schema.NamedType("String"))
	nonNullInt     = schema.NonNullType(schema.NamedType("Int"))
	nullableString = schema.NamedType("String")
)

func typenameField() selectionset.Selection {
	return selectionset.Field(datadict.TypenameKey, typename)
}

func mustVariables(text string) []operation.VariableDefinition {
	defs, err := operation.ParseVariables(text, "")
	if err != nil {
		panic(err)
	}
	return defs
}

func object[S selectionset.Shape](s S) datadict.Value {
	return datadict.ObjectValue(s.DataDict())
}

// objects encodes a nullable list of nullable objects.
func objects[S selectionset.Shape](n nullable.Nullable[[]nullable.Nullable[S]]) datadict.Value {
	return datadict.FromOptional(n, func(items []nullable.Nullable[S]) datadict.Value {
		return datadict.FromList(items, func(item nullable.Nullable[S]) datadict.Value {
			return datadict.FromOptional(item, object[S])
		})
	})
}

func optionalObjects[S selectionset.Shape](typ *selectionset.Type[S]) datadict.Decoder[nullable.Nullable[[]nullable.Nullable[S]]] {
	return datadict.Optional(datadict.ListOf(datadict.Optional(selectionset.Object(typ))))
}
