package operation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"

	"github.com/hanpama/graphshape/internal/language"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/schema"
)

var (
	// ErrVariableMismatch is matched by every variable validation failure.
	ErrVariableMismatch = errors.New("variable mismatch")

	ErrUndeclaredVariable = fmt.Errorf("%w: undeclared variable", ErrVariableMismatch)
	ErrMissingVariable    = fmt.Errorf("%w: required variable not provided", ErrVariableMismatch)
	ErrVariableType       = fmt.Errorf("%w: variable type", ErrVariableMismatch)
)

// VariableDefinition declares one operation variable.
type VariableDefinition struct {
	Name         string
	Type         *schema.TypeRef
	DefaultValue any
	HasDefault   bool
}

// Required reports whether the variable must be supplied with a non-null
// value.
func (v VariableDefinition) Required() bool {
	return v.Type.IsNonNull() && !v.HasDefault
}

// Variables maps variable names to three-state values. Absent entries are
// not sent.
type Variables map[string]nullable.Nullable[any]

// Wire returns the variables as sent: absent entries are dropped and null
// entries kept as explicit nulls. It returns nil when nothing is sent.
func (vs Variables) Wire() map[string]any {
	var out map[string]any
	for name, v := range vs {
		if v.IsAbsent() {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(vs))
		}
		x, _ := v.Get()
		out[name] = x
	}
	return out
}

// InputObject is an input object value whose fields distinguish absent from
// null. Absent fields are omitted when marshaled.
type InputObject map[string]nullable.Nullable[any]

func (o InputObject) MarshalJSON() ([]byte, error) {
	return json.Marshal(Variables(o).Wire())
}

// ParseVariables extracts the variable definitions of the named operation
// in text. An empty name selects the only operation.
func ParseVariables(text, operationName string) ([]VariableDefinition, error) {
	doc, err := language.ParseQuery(text)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	op, err := language.SelectOperation(doc, operationName)
	if err != nil {
		return nil, err
	}
	defs := make([]VariableDefinition, 0, len(op.VariableDefinitions))
	for _, vd := range op.VariableDefinitions {
		def := VariableDefinition{Name: vd.Variable, Type: schema.BuildTypeRef(vd.Type)}
		if vd.DefaultValue != nil {
			def.HasDefault = true
			if def.DefaultValue, err = vd.DefaultValue.Value(nil); err != nil {
				return nil, fmt.Errorf("variable $%s default: %w", vd.Variable, err)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// validateVariables checks supplied values against the declared set and
// collects every violation.
func validateVariables(defs []VariableDefinition, vars Variables) error {
	var errs *multierror.Error
	declared := make(map[string]VariableDefinition, len(defs))
	for _, def := range defs {
		declared[def.Name] = def
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := declared[name]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("%w $%s", ErrUndeclaredVariable, name))
		}
	}

	for _, def := range defs {
		v := vars[def.Name]
		switch {
		case v.IsAbsent():
			if def.Required() {
				errs = multierror.Append(errs, fmt.Errorf("%w: variable $%s of required type %s was not provided", ErrMissingVariable, def.Name, def.Type))
			}
		case v.IsNull():
			if def.Type.IsNonNull() {
				errs = multierror.Append(errs, fmt.Errorf("%w: variable $%s of type %s cannot be null", ErrMissingVariable, def.Name, def.Type))
			}
		default:
			x, _ := v.Get()
			if err := checkValue(x, def.Type); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%w: variable $%s of type %s: %v", ErrVariableType, def.Name, def.Type, err))
			}
		}
	}
	return errs.ErrorOrNil()
}

type anyNullable interface{ Any() nullable.Nullable[any] }

// checkValue verifies that value can be coerced to t. Built-in scalars are
// checked strictly; enums, input objects, and custom scalars only by kind.
func checkValue(value any, t *schema.TypeRef) error {
	if n, ok := value.(anyNullable); ok {
		inner := n.Any()
		if !inner.IsPresent() {
			if t.IsNonNull() {
				return fmt.Errorf("cannot provide null for non-null type")
			}
			return nil
		}
		value, _ = inner.Get()
	}
	if t.IsNonNull() {
		if value == nil {
			return fmt.Errorf("cannot provide null for non-null type")
		}
		return checkValue(value, t.Unwrap())
	}
	if value == nil {
		return nil
	}
	if t.Kind == schema.TypeRefKindList {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			// A single value is coerced to a list of one.
			return checkValue(value, t.OfType)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := checkValue(rv.Index(i).Interface(), t.OfType); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	}

	switch t.Named {
	case "Int":
		if !isInt32(value) {
			return fmt.Errorf("cannot represent %v as Int", value)
		}
	case "Float":
		if !isNumber(value) {
			return fmt.Errorf("cannot represent %v as Float", value)
		}
	case "String":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("cannot represent %v as String", value)
		}
	case "Boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("cannot represent %v as Boolean", value)
		}
	case "ID":
		if _, ok := value.(string); !ok && !isInt(value) {
			return fmt.Errorf("cannot represent %v as ID", value)
		}
	}
	return nil
}

func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return true
	case float64:
		return n == math.Trunc(n)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

func isInt32(v any) bool {
	var i int64
	switch n := v.(type) {
	case int:
		i = int64(n)
	case int8, int16, int32, uint8, uint16:
		return true
	case int64:
		i = n
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return false
		}
		i = int64(n)
	case json.Number:
		var err error
		if i, err = n.Int64(); err != nil {
			return false
		}
	default:
		return false
	}
	return i >= math.MinInt32 && i <= math.MaxInt32
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32, float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	}
	return false
}
