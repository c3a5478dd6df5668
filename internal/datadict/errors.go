package datadict

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecodeMismatch is matched by every error raised when a stored value does
// not have the shape an accessor asked for.
var ErrDecodeMismatch = errors.New("decode mismatch")

// Path locates a value inside a response object: response keys and list indexes.
type Path []any

func (p Path) String() string {
	var b strings.Builder
	for i, elem := range p {
		switch v := elem.(type) {
		case int:
			fmt.Fprintf(&b, "[%d]", v)
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// DecodeError reports a decode mismatch at Path.
type DecodeError struct {
	Path     Path
	Expected string
	Actual   string
}

func (e *DecodeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("decode mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("decode mismatch at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecodeMismatch }

func mismatch(expected string, v Value) error {
	actual := v.kind.String()
	if v.kind == KindScalar {
		actual = fmt.Sprintf("%T", v.scalar)
	}
	return &DecodeError{Expected: expected, Actual: actual}
}

// prependPath adds elem in front of the path of a DecodeError. Other errors
// are wrapped with the element for context.
func prependPath(err error, elem any) error {
	var de *DecodeError
	if errors.As(err, &de) {
		out := *de
		out.Path = append(Path{elem}, de.Path...)
		return &out
	}
	return fmt.Errorf("%v: %w", elem, err)
}
