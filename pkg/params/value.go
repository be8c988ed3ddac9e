package params

import "fmt"

// Value is a dynamically-tagged leaf value for one decoded parameter.
// Exactly one variant is populated, identified by Kind. Values are
// produced by the schema-directed decoder, never assembled by hand from
// untyped input.
type Value struct {
	kind Kind

	real    float64
	integer uint32
	boolean bool

	// Categorical payload: the variant value from the schema plus the
	// boundary index it was addressed by.
	variant any
	index   int
}

// RealValue wraps a float64 as a real parameter value.
func RealValue(v float64) Value {
	return Value{kind: KindReal, real: v}
}

// IntegerValue wraps a uint32 as an integer parameter value.
func IntegerValue(v uint32) Value {
	return Value{kind: KindInteger, integer: v}
}

// BoolValue wraps a bool as a boolean parameter value.
func BoolValue(v bool) Value {
	return Value{kind: KindBool, boolean: v}
}

// CategoricalValue wraps a resolved variant and its boundary index.
func CategoricalValue(variant any, index int) Value {
	return Value{kind: KindCategorical, variant: variant, index: index}
}

// Kind returns the variant of this value.
func (v Value) Kind() Kind {
	return v.kind
}

// Float64 returns the real payload; ok is false for non-real values.
func (v Value) Float64() (float64, bool) {
	return v.real, v.kind == KindReal
}

// Uint32 returns the integer payload; ok is false for non-integer values.
func (v Value) Uint32() (uint32, bool) {
	return v.integer, v.kind == KindInteger
}

// Bool returns the boolean payload; ok is false for non-boolean values.
func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Categorical returns the resolved variant value; ok is false for
// non-categorical values.
func (v Value) Categorical() (any, bool) {
	return v.variant, v.kind == KindCategorical
}

// CategoricalIndex returns the boundary index of the resolved variant;
// ok is false for non-categorical values.
func (v Value) CategoricalIndex() (int, bool) {
	return v.index, v.kind == KindCategorical
}

// String renders the value for debugging.
func (v Value) String() string {
	switch v.kind {
	case KindReal:
		return fmt.Sprintf("%v", v.real)
	case KindInteger:
		return fmt.Sprintf("%d", v.integer)
	case KindBool:
		return fmt.Sprintf("%t", v.boolean)
	case KindCategorical:
		return fmt.Sprintf("%v", v.variant)
	default:
		return v.kind.String()
	}
}

// CategoricalAs resolves a categorical value to a concrete variant type.
// ok is false if the value is not categorical or the variant has a
// different type.
func CategoricalAs[T any](v Value) (T, bool) {
	variant, ok := v.Categorical()
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := variant.(T)
	return typed, ok
}

// Params is one decoded configuration: a mapping from flattened parameter
// name to typed value, validated against a Space schema.
type Params map[string]Value

// Real returns the real parameter with the given name; ok is false if the
// name is absent or not real.
func (p Params) Real(name string) (float64, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	return v.Float64()
}

// Integer returns the integer parameter with the given name; ok is false
// if the name is absent or not integer.
func (p Params) Integer(name string) (uint32, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	return v.Uint32()
}

// Flag returns the boolean parameter with the given name; ok is false if
// the name is absent or not boolean.
func (p Params) Flag(name string) (bool, bool) {
	v, ok := p[name]
	if !ok {
		return false, false
	}
	return v.Bool()
}

// Categorical returns the resolved variant of the categorical parameter
// with the given name; ok is false if the name is absent or not categorical.
func (p Params) Categorical(name string) (any, bool) {
	v, ok := p[name]
	if !ok {
		return nil, false
	}
	return v.Categorical()
}
