// Package params models typed parameter spaces for automatic algorithm
// configuration: the space declaration itself, the flattening transform
// that collapses nested spaces into a single dotted namespace, the engine
// encoding, and the schema-directed decoder that turns untyped
// configuration records back into typed values.
package params

import (
	"fmt"
	"strings"
)

// Space is an ordered mapping from parameter name to Subspace.
// Insertion order is preserved and load-bearing: it determines display
// order, engine encoding order, and makes repeated Flatten calls
// deterministic. Names are unique within one level; adding a duplicate
// name panics with *DuplicateNameError. A Space is not safe for
// concurrent mutation, but is safe for concurrent reads once built.
type Space struct {
	names     []string
	subspaces map[string]Subspace
}

// NewSpace constructs an empty parameter space.
func NewSpace() *Space {
	return &Space{subspaces: make(map[string]Subspace)}
}

// AddRaw inserts a subspace under the given name.
// Panics with *DuplicateNameError if the name is already present.
func (s *Space) AddRaw(name string, subspace Subspace) *Space {
	if s.subspaces == nil {
		s.subspaces = make(map[string]Subspace)
	}
	if _, exists := s.subspaces[name]; exists {
		panic(&DuplicateNameError{Name: name})
	}
	s.names = append(s.names, name)
	s.subspaces[name] = subspace
	return s
}

// AddReal adds a real parameter with the given name and bounds.
// If log is true, values are sampled from a logarithmic space.
func (s *Space) AddReal(name string, lower, upper float64, log bool) *Space {
	return s.AddRaw(name, NewReal(lower, upper, log))
}

// AddInteger adds an integer parameter with the given name and bounds.
// If log is true, values are sampled from a logarithmic space.
func (s *Space) AddInteger(name string, lower, upper uint32, log bool) *Space {
	return s.AddRaw(name, NewInteger(lower, upper, log))
}

// AddBool adds a boolean parameter with the given name.
func (s *Space) AddBool(name string) *Space {
	return s.AddRaw(name, NewBool())
}

// AddCategorical adds a categorical parameter with the given name and
// variants. Variant order defines the boundary index of each variant.
func (s *Space) AddCategorical(name string, variants ...any) *Space {
	return s.AddRaw(name, NewCategorical(variants...))
}

// AddCategoricalNames adds a categorical parameter over string variants.
// This keeps call sites free of []any conversions when the variants are
// plain names.
func (s *Space) AddCategoricalNames(name string, variants ...string) *Space {
	values := make([]any, len(variants))
	for i, v := range variants {
		values[i] = v
	}
	return s.AddCategorical(name, values...)
}

// AddNested embeds a complete parameter space under the given name.
// See Flatten for collapsing nested spaces before engine encoding.
func (s *Space) AddNested(name string, space *Space) *Space {
	return s.AddRaw(name, NewNested(space))
}

// WithReal is the value-style variant of AddReal for builder chains.
func (s *Space) WithReal(name string, lower, upper float64, log bool) *Space {
	return s.AddReal(name, lower, upper, log)
}

// WithInteger is the value-style variant of AddInteger for builder chains.
func (s *Space) WithInteger(name string, lower, upper uint32, log bool) *Space {
	return s.AddInteger(name, lower, upper, log)
}

// WithBool is the value-style variant of AddBool for builder chains.
func (s *Space) WithBool(name string) *Space {
	return s.AddBool(name)
}

// WithCategorical is the value-style variant of AddCategorical for builder chains.
func (s *Space) WithCategorical(name string, variants ...any) *Space {
	return s.AddCategorical(name, variants...)
}

// WithCategoricalNames is the value-style variant of AddCategoricalNames.
func (s *Space) WithCategoricalNames(name string, variants ...string) *Space {
	return s.AddCategoricalNames(name, variants...)
}

// WithNested is the value-style variant of AddNested for builder chains.
func (s *Space) WithNested(name string, space *Space) *Space {
	return s.AddNested(name, space)
}

// Get returns the subspace with the given name, if present.
func (s *Space) Get(name string) (Subspace, bool) {
	sub, ok := s.subspaces[name]
	return sub, ok
}

// Names returns the parameter names in insertion order.
// The returned slice must not be modified.
func (s *Space) Names() []string {
	return s.names
}

// Len returns the number of subspaces at the top level.
func (s *Space) Len() int {
	return len(s.names)
}

// HasNested reports whether any top-level subspace is nested.
func (s *Space) HasNested() bool {
	for _, name := range s.names {
		if s.subspaces[name].IsNested() {
			return true
		}
	}
	return false
}

// Flatten collapses nested subspaces into the top level, in place.
//
// Every nested entry is replaced by its children, each renamed to
// "{parent}.{child}". Children are flattened first, so arbitrarily deep
// nesting resolves in one top-level call. Returns whether any nesting was
// removed; flattening an already-flat space is a no-op.
//
// A collision between flattened keys indicates a naming conflict between
// sibling nested spaces. This is a configuration-authoring bug, so Flatten
// panics with *KeyCollisionError rather than silently overwriting.
func (s *Space) Flatten() bool {
	modified := false

	names := make([]string, len(s.names))
	copy(names, s.names)

	flat := make([]string, 0, len(names))
	for _, name := range names {
		sub := s.subspaces[name]
		if !sub.IsNested() {
			flat = append(flat, name)
			continue
		}

		modified = true
		delete(s.subspaces, name)

		inner := sub.Nested()
		inner.Flatten()
		for _, innerName := range inner.names {
			flatKey := name + "." + innerName
			if _, exists := s.subspaces[flatKey]; exists {
				panic(&KeyCollisionError{Key: flatKey})
			}
			s.subspaces[flatKey] = inner.subspaces[innerName]
			flat = append(flat, flatKey)
		}
	}

	s.names = flat
	return modified
}

// String renders the space for debugging, in insertion order.
func (s *Space) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, name := range s.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", name, s.subspaces[name])
	}
	b.WriteString("}")
	return b.String()
}
