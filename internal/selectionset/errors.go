package selectionset

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hanpama/graphshape/internal/datadict"
)

var (
	// ErrFragmentNotFulfilled is matched when a fragment's type condition holds
	// but the container lacks fields the fragment requires.
	ErrFragmentNotFulfilled = errors.New("fragment not fulfilled")
	// ErrUndeclaredField is matched when a shape reads or constructs a key
	// outside its selection list.
	ErrUndeclaredField = errors.New("undeclared field")
)

// FragmentError reports every required key a fragment found missing or null.
// It matches ErrFragmentNotFulfilled and, through its causes,
// datadict.ErrDecodeMismatch.
type FragmentError struct {
	Fragment string
	Typename string
	Missing  []string
	Err      error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("fragment %s on %s not fulfilled: %v", e.Fragment, e.Typename, e.Err)
}

func (e *FragmentError) Is(target error) bool { return target == ErrFragmentNotFulfilled }

func (e *FragmentError) Unwrap() error { return e.Err }

// violations collects the required keys a validation found missing.
type violations struct {
	missing []string
	err     *multierror.Error
}

func (v *violations) add(path datadict.Path, expected, actual string) {
	v.missing = append(v.missing, path.String())
	v.err = multierror.Append(v.err, &datadict.DecodeError{Path: path, Expected: expected, Actual: actual})
}

func (v *violations) merge(o *violations) {
	v.missing = append(v.missing, o.missing...)
	if o.err != nil {
		v.err = multierror.Append(v.err, o.err.Errors...)
	}
}

func (v *violations) empty() bool { return v.err == nil }

func undeclared(shape, key string) error {
	return fmt.Errorf("%w: %s has no selection %q", ErrUndeclaredField, shape, key)
}
