package tune

import (
	"github.com/Saethox/irace-go/internal/engine"
	"github.com/Saethox/irace-go/pkg/params"
)

// TargetRunner executes the target algorithm once, with the parameters,
// seed, and instance of one experiment, and returns its performance as a
// single scalar cost. Runners may block for arbitrarily long (a full
// optimization loop is the expected case) and are invoked concurrently up
// to the scenario's job count, so they must be safe for concurrent use.
type TargetRunner[P any] interface {
	Run(scenario *Scenario, experiment Experiment[P]) (float64, error)
}

// TargetRunnerFunc adapts a function to TargetRunner.
type TargetRunnerFunc[P any] func(scenario *Scenario, experiment Experiment[P]) (float64, error)

// Run calls the function.
func (f TargetRunnerFunc[P]) Run(scenario *Scenario, experiment Experiment[P]) (float64, error) {
	return f(scenario, experiment)
}

// erasedRunner is a TargetRunner with its problem type erased, invokable
// with the raw boundary payload. This is the only seam where genericity
// is erased and re-established.
type erasedRunner interface {
	run(scenario *Scenario, registry *Registry, raw *engine.Experiment, decoded params.Params) (float64, error)
}

// runnerWrapper re-specializes the raw payload to P: it resolves the
// instance index through the registry with a checked downcast, assembles
// the typed Experiment, and invokes the wrapped runner.
type runnerWrapper[P any] struct {
	runner TargetRunner[P]
}

func (w runnerWrapper[P]) run(scenario *Scenario, registry *Registry, raw *engine.Experiment, decoded params.Params) (float64, error) {
	experiment := Experiment[P]{
		ID:     raw.ConfigurationID,
		Seed:   raw.Seed,
		Params: decoded,
	}
	if raw.InstanceID != nil {
		experiment.InstanceID = *raw.InstanceID
	}

	if raw.Instance != nil {
		index := *raw.Instance
		instance, ok := ResolveInstance[P](registry, index)
		if !ok {
			return 0, &MissingInstanceError{Index: index, Tag: registry.tagAt(index)}
		}
		experiment.Instance = instance
	}

	return w.runner.Run(scenario, experiment)
}
