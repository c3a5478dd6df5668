// Package reqid tags a fetch with an id that follows it through events and
// the X-Request-Id header.
package reqid

import (
	"context"
	"math/rand/v2"
	"strconv"
)

// Header carries the id to the server.
const Header = "X-Request-Id"

type key struct{}

// NewContext returns a copy of parent with a new random request ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, int64) {
	id := rand.Int64()
	return context.WithValue(parent, key{}, id), id
}

// Ensure returns ctx unchanged when it already carries an id and a derived
// context with a new one otherwise.
func Ensure(ctx context.Context) (context.Context, int64) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	return NewContext(ctx)
}

// FromContext extracts the request ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(key{}).(int64)
	return id, ok
}

// Format renders id for the request header.
func Format(id int64) string { return strconv.FormatInt(id, 36) }

// FromHeader stores the id carried in an X-Request-Id value, or a new one
// when the value is missing or malformed.
func FromHeader(parent context.Context, value string) (context.Context, int64) {
	id, err := strconv.ParseInt(value, 36, 64)
	if err != nil || value == "" {
		return NewContext(parent)
	}
	return context.WithValue(parent, key{}, id), id
}
