// Package transport delivers operation requests to a GraphQL server and
// hands the decoded response tree to the shape layer.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var (
	// ErrPersistedQueryNotFound is returned when the server does not know a
	// persisted-only document.
	ErrPersistedQueryNotFound = errors.New("persisted query not found")
	// ErrStatus is matched by *StatusError.
	ErrStatus = errors.New("unexpected HTTP status")
)

// Transport sends an encoded request body and returns the server's response.
type Transport interface {
	Send(ctx context.Context, body []byte) (*Response, error)
}

// Response is a decoded GraphQL response. Data is nil when the server sent
// null or no data.
type Response struct {
	Data       map[string]any
	Errors     []GraphQLError
	Extensions map[string]any
	// Raw is the undecoded body.
	Raw []byte
}

// Location is a line/column pair inside the document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is one entry of a response's errors list.
type GraphQLError struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s (at %s)", e.Message, strings.Join(parts, "."))
}

// StatusError reports a non-2xx answer that carried no GraphQL response.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Code)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// DecodeResponse parses a GraphQL response body. Numbers are kept as
// json.Number so integer IDs and large Ints survive unchanged.
func DecodeResponse(raw []byte) (*Response, error) {
	var body struct {
		Data       map[string]any `json:"data"`
		Errors     []GraphQLError `json:"errors"`
		Extensions map[string]any `json:"extensions"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &Response{Data: body.Data, Errors: body.Errors, Extensions: body.Extensions, Raw: raw}, nil
}

// IsGraphQLResponse reports whether raw looks like a GraphQL response
// object, i.e. has a data or errors member.
func IsGraphQLResponse(raw []byte) bool {
	if !gjson.ValidBytes(raw) {
		return false
	}
	r := gjson.ParseBytes(raw)
	return r.IsObject() && (r.Get("data").Exists() || r.Get("errors").Exists())
}

// IsPersistedQueryNotFound reports whether the response rejects the request
// because the server does not know the document hash. Servers signal this
// with the PERSISTED_QUERY_NOT_FOUND code or the PersistedQueryNotFound
// message.
func IsPersistedQueryNotFound(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	return gjson.GetBytes(raw, `errors.#(extensions.code=="PERSISTED_QUERY_NOT_FOUND")`).Exists() ||
		gjson.GetBytes(raw, `errors.#(message=="PersistedQueryNotFound")`).Exists()
}
