package tune

import (
	"github.com/Saethox/irace-go/pkg/params"
)

// Experiment is the fully specialized descriptor of one engine callback:
// the run's parameters decoded against the schema and the instance
// resolved to the concrete problem type. It is created fresh for every
// invocation and discarded when the invocation returns.
type Experiment[P any] struct {
	// ID is the engine's configuration identifier for this invocation.
	ID string
	// Seed is the per-invocation RNG seed. Host runner logic owns its
	// random state and should derive it from this seed.
	Seed uint64
	// InstanceID names the instance for display and logging; empty if
	// the engine supplied none.
	InstanceID string
	// Instance is the resolved registry entry, or nil if the engine
	// referenced no instance.
	Instance *Instance[P]
	// Params is the decoded configuration for this invocation.
	Params params.Params
}
