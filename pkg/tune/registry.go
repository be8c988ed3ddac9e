package tune

import "fmt"

// registryEntry is one erased instance plus the type tag recorded at
// registration time. The tag names the concrete instance type and exists
// for diagnostics; the checked downcast itself is a type assertion.
type registryEntry struct {
	instance any
	tag      string
}

// Registry holds the heterogeneously-typed problem instances of one
// tuning run behind a single non-generic handle. It is built once before
// the run starts and is read-only afterwards, which makes it safe to
// share across concurrent experiment invocations. Instances are addressed
// by their registration index, the only form the engine can refer to them
// by.
type Registry struct {
	entries []registryEntry
}

// NewRegistry erases the given instances into a registry. Registration
// order defines the index each instance is addressed by across the
// boundary.
func NewRegistry[P any](instances ...Instance[P]) *Registry {
	entries := make([]registryEntry, len(instances))
	for i := range instances {
		entries[i] = registryEntry{
			instance: &instances[i],
			tag:      fmt.Sprintf("%T", instances[i]),
		}
	}
	return &Registry{entries: entries}
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// tag returns the type tag recorded for an index, for diagnostics.
func (r *Registry) tagAt(index int) string {
	if r == nil || index < 0 || index >= len(r.entries) {
		return ""
	}
	return r.entries[index].tag
}

// ResolveInstance returns the instance at the given boundary index,
// re-specialized to the expected problem type P. The result is absent if
// the index is out of range or the entry was registered under a different
// problem type; resolution never panics, and callers that require an
// instance must treat absence as a hard error.
func ResolveInstance[P any](r *Registry, index int) (*Instance[P], bool) {
	if r == nil || index < 0 || index >= len(r.entries) {
		return nil, false
	}
	instance, ok := r.entries[index].instance.(*Instance[P])
	return instance, ok
}
