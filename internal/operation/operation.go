// Package operation correlates a GraphQL document with its variables and the
// shape its response data decodes to.
package operation

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/hanpama/graphshape/internal/language"
	"github.com/hanpama/graphshape/internal/selectionset"
)

// Type is the operation type of a definition.
type Type = language.Operation

const (
	Query        = language.Query
	Mutation     = language.Mutation
	Subscription = language.Subscription
)

// Definition is the static part of an operation, shared by every execution.
type Definition[D selectionset.Shape] struct {
	Name      string
	Type      Type
	Document  Document
	Variables []VariableDefinition
	Data      *selectionset.Type[D]
}

// Operation is one execution of a definition with concrete variables.
type Operation[D selectionset.Shape] struct {
	def  *Definition[D]
	vars Variables
}

// New validates vars against def's declared variables. Every violation is
// reported; the result matches ErrVariableMismatch.
func New[D selectionset.Shape](def *Definition[D], vars Variables) (*Operation[D], error) {
	if err := validateVariables(def.Variables, vars); err != nil {
		return nil, fmt.Errorf("operation %s: %w", def.Name, err)
	}
	return &Operation[D]{def: def, vars: vars}, nil
}

func (o *Operation[D]) Name() string               { return o.def.Name }
func (o *Operation[D]) Type() Type                 { return o.def.Type }
func (o *Operation[D]) Document() Document         { return o.def.Document }
func (o *Operation[D]) Definition() *Definition[D] { return o.def }

// Variables returns the supplied variables, including absent entries.
func (o *Operation[D]) Variables() Variables { return o.vars }

// Request builds the wire request. Literal documents always carry the text;
// automatically persisted documents carry it only when includeQuery is set;
// persisted-only documents never do.
func (o *Operation[D]) Request(includeQuery bool) Request {
	doc := o.def.Document
	req := Request{
		OperationName: o.def.Name,
		Variables:     o.vars.Wire(),
	}
	switch doc.Mode {
	case ModeLiteral:
		req.Query = doc.Definition
	case ModeAutomaticallyPersisted:
		if includeQuery {
			req.Query = doc.Definition
		}
		req.Extensions = persistedExtensions(doc.OperationIdentifier)
	case ModePersistedOnly:
		req.Extensions = persistedExtensions(doc.OperationIdentifier)
	}
	return req
}

// DecodeData wraps the data member of a response as the root shape.
func (o *Operation[D]) DecodeData(tree map[string]any) (D, error) {
	return selectionset.Decode(o.def.Data, tree)
}

// Request is the GraphQL-over-HTTP request body.
type Request struct {
	Query         string         `json:"query,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
	Extensions    *Extensions    `json:"extensions,omitempty"`
}

// Extensions carries the persisted query hash.
type Extensions struct {
	PersistedQuery *PersistedQuery `json:"persistedQuery,omitempty"`
}

type PersistedQuery struct {
	Version    int    `json:"version"`
	Sha256Hash string `json:"sha256Hash"`
}

func persistedExtensions(id string) *Extensions {
	return &Extensions{PersistedQuery: &PersistedQuery{Version: 1, Sha256Hash: id}}
}

// Marshal encodes the request body.
func (r Request) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
