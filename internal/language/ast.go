// Package language re-exports the parts of the gqlparser AST that the shape
// and operation layers work with, so callers depend on one import.
package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	QueryDocument       = ast.QueryDocument
	OperationDefinition = ast.OperationDefinition
	Schema              = ast.Schema
	Definition          = ast.Definition
	FieldDefinition     = ast.FieldDefinition
	Type                = ast.Type
	Value               = ast.Value
)

// Operation is the executable operation kind of a document.
type Operation = ast.Operation

const (
	Query        Operation = ast.Query
	Mutation     Operation = ast.Mutation
	Subscription Operation = ast.Subscription
)

type DefinitionKind = ast.DefinitionKind

const (
	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject
)
