package selectionset

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/schema"
)

// Construct builds a container for S from explicit values, checking them
// against typ's selection list. Keys outside the list are rejected, and
// required fields that are absent or null fail with datadict.ErrDecodeMismatch.
//
// __typename is filled in when the parent type is an object. The result is
// recorded as fulfilling typ, the shape an inline fragment was declared in,
// and every fragment that applies to the constructed object.
func Construct[S Shape](typ *Type[S], fields map[string]datadict.Value) (S, error) {
	var zero S
	var errs *multierror.Error

	own := make(map[string]datadict.Value, len(fields)+1)
	for _, key := range sortedKeys(fields) {
		if !typ.d.declares(key) {
			errs = multierror.Append(errs, undeclared(typ.d.name, key))
			continue
		}
		own[key] = fields[key]
	}
	if _, ok := own[datadict.TypenameKey]; !ok {
		if typ.d.parent.Kind != schema.TypeKindObject {
			errs = multierror.Append(errs, &datadict.DecodeError{
				Path:     datadict.Path{datadict.TypenameKey},
				Expected: "object type implementing " + typ.d.parent.Name,
				Actual:   "absent",
			})
		} else {
			own[datadict.TypenameKey] = datadict.StringValue(typ.d.parent.Name)
		}
	}
	for _, key := range sortedKeys(own) {
		sel, ok := typ.d.declared[key]
		if !ok || sel.Shape == nil {
			continue
		}
		if err := checkNested(sel.Shape.desc(), own[key], datadict.Path{key}); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	dict := datadict.New(own)
	v := &violations{}
	ids := typ.d.validate(dict, v, true)
	if root := typ.d.root; root != nil {
		// typ is already checked; dict is dropped if anything failed.
		dict.MarkFulfilled(typ.d.id)
		ids = append(ids, root.validate(dict, v, true)...)
	}
	if !v.empty() {
		errs = multierror.Append(errs, v.err.Errors...)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return zero, fmt.Errorf("construct %s: %w", typ.d.name, err)
	}
	dict.MarkFulfilled(ids...)
	return typ.wrap(dict), nil
}

// checkNested requires every object inside val to fulfill d. Nested shapes
// are normally built with their own constructor, so this only re-checks
// containers that were not.
func checkNested(d *descriptor, val datadict.Value, path datadict.Path) error {
	if items, ok := val.List(); ok {
		var errs *multierror.Error
		for i, item := range items {
			if err := checkNested(d, item, append(path[:len(path):len(path)], i)); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		return errs.ErrorOrNil()
	}
	dict, ok := val.Object()
	if !ok || dict.IsFulfilled(d.id) {
		return nil
	}
	v := &violations{}
	ids := d.validate(dict, v, false)
	if !v.empty() {
		return fmt.Errorf("%s: %w", path, v.err.ErrorOrNil())
	}
	dict.MarkFulfilled(ids...)
	return nil
}

func sortedKeys(m map[string]datadict.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
