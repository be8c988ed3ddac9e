package params

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Subspace or Value.
type Kind int

const (
	// KindReal is a real-valued parameter with float64 bounds
	KindReal Kind = iota
	// KindInteger is an integer parameter with uint32 bounds
	KindInteger
	// KindBool is a boolean parameter with the implicit domain {true, false}
	KindBool
	// KindCategorical is a parameter over an ordered list of opaque variants
	KindCategorical
	// KindNested is a complete parameter space embedded under one name
	KindNested
)

// String returns the human-readable name of the kind
func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindCategorical:
		return "categorical"
	case KindNested:
		return "nested"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Subspace is a single parameter declaration within a Space.
// Exactly one variant is populated, identified by Kind.
type Subspace struct {
	kind Kind

	// Real and Integer bounds. Integer bounds are stored widened to
	// float64 for encoding; IntegerBounds recovers the uint32 values.
	lower float64
	upper float64
	log   bool

	// Categorical variants, in declaration order. The position of a
	// variant is the index it is addressed by across the boundary.
	variants []any

	// Nested space.
	nested *Space
}

// NewReal creates a real-valued subspace with the given bounds.
// If log is true, the engine samples the parameter on a logarithmic scale.
// Bound ordering (lower < upper) is the caller's responsibility.
func NewReal(lower, upper float64, log bool) Subspace {
	return Subspace{kind: KindReal, lower: lower, upper: upper, log: log}
}

// NewInteger creates an integer subspace with the given bounds.
// If log is true, the engine samples the parameter on a logarithmic scale.
func NewInteger(lower, upper uint32, log bool) Subspace {
	return Subspace{kind: KindInteger, lower: float64(lower), upper: float64(upper), log: log}
}

// NewBool creates a boolean subspace.
func NewBool() Subspace {
	return Subspace{kind: KindBool, variants: []any{true, false}}
}

// NewCategorical creates a categorical subspace over the given variants.
// Variant order is significant: it defines the index each variant is
// addressed by across the engine boundary.
func NewCategorical(variants ...any) Subspace {
	return Subspace{kind: KindCategorical, variants: variants}
}

// NewNested embeds a complete parameter space as a subspace.
// Nested subspaces never cross the engine boundary directly; the enclosing
// space must be flattened first.
func NewNested(space *Space) Subspace {
	return Subspace{kind: KindNested, nested: space}
}

// Kind returns the variant of this subspace
func (s Subspace) Kind() Kind {
	return s.kind
}

// IsNested reports whether this subspace embeds another parameter space
func (s Subspace) IsNested() bool {
	return s.kind == KindNested
}

// RealBounds returns the bounds of a real subspace.
// The second return is false if the subspace is not real.
func (s Subspace) RealBounds() (lower, upper float64, log, ok bool) {
	if s.kind != KindReal {
		return 0, 0, false, false
	}
	return s.lower, s.upper, s.log, true
}

// IntegerBounds returns the bounds of an integer subspace.
// The second return is false if the subspace is not integer.
func (s Subspace) IntegerBounds() (lower, upper uint32, log, ok bool) {
	if s.kind != KindInteger {
		return 0, 0, false, false
	}
	return uint32(s.lower), uint32(s.upper), s.log, true
}

// Variants returns the ordered variant list of a bool or categorical subspace
func (s Subspace) Variants() []any {
	return s.variants
}

// Nested returns the embedded space of a nested subspace, or nil
func (s Subspace) Nested() *Space {
	return s.nested
}

// String renders the subspace for debugging
func (s Subspace) String() string {
	switch s.kind {
	case KindReal:
		return fmt.Sprintf("[%v, %v]%s", s.lower, s.upper, logSuffix(s.log))
	case KindInteger:
		return fmt.Sprintf("[%d, %d]%s", uint32(s.lower), uint32(s.upper), logSuffix(s.log))
	case KindBool:
		return "bool"
	case KindCategorical:
		parts := make([]string, len(s.variants))
		for i, v := range s.variants {
			parts[i] = fmt.Sprintf("%v", v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindNested:
		return s.nested.String()
	default:
		return s.kind.String()
	}
}

func logSuffix(log bool) string {
	if log {
		return " (log)"
	}
	return ""
}
