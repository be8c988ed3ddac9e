package tune

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Saethox/irace-go/internal/engine"
	"github.com/Saethox/irace-go/pkg/logger"
	"github.com/Saethox/irace-go/pkg/params"
)

// Tune runs one tuning session: it encodes the space and scenario for the
// engine, exposes the runner and instances through the dispatch adapter,
// and decodes the engine's final configurations through the same schema,
// in engine order.
//
// The space must be flat; flatten nested spaces before calling. The
// engine invokes the runner concurrently up to the scenario's job count.
func Tune[P any](runner TargetRunner[P], instances []Instance[P], scenario *Scenario, space *params.Space) ([]params.Params, error) {
	dispatcher, err := NewDispatcher(runner, instances, scenario, space)
	if err != nil {
		return nil, err
	}
	defer dispatcher.Close()

	transport, err := engine.Dial(scenario.Verbose == VerbositySilent)
	if err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}
	defer transport.Close()

	return tuneSession(dispatcher, transport, scenario, space)
}

// TuneWithTransport is Tune over a caller-supplied engine transport
// instead of the driver subprocess. This is the seam end-to-end tests use
// to stand in a fake engine.
func TuneWithTransport[P any](transport engine.Transport, runner TargetRunner[P], instances []Instance[P], scenario *Scenario, space *params.Space) ([]params.Params, error) {
	dispatcher, err := NewDispatcher(runner, instances, scenario, space)
	if err != nil {
		return nil, err
	}
	defer dispatcher.Close()

	return tuneSession(dispatcher, transport, scenario, space)
}

// tuneSession drives one session over an established transport. It is
// the transport-agnostic core of Tune, shared with tests.
func tuneSession(dispatcher *Dispatcher, transport engine.Transport, scenario *Scenario, space *params.Space) ([]params.Params, error) {
	records, err := space.EncodeForEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameter space: %w", err)
	}

	start := engine.NewStartMessage(encodeScenario(scenario, dispatcher.NumInstances()), records)
	session := engine.NewSession(transport, scenario.NumJobs, dispatcher.Invoke)

	logger.Info("tuning run started",
		"run_id", dispatcher.RunID(),
		"max_experiments", scenario.MaxExperiments,
		"n_jobs", scenario.NumJobs,
		"instances", dispatcher.NumInstances())

	raw, err := session.Run(start)
	if err != nil {
		return nil, err
	}

	// The engine's result is decoded through the same schema that
	// produced the encoding, preserving engine order.
	results := make([]params.Params, 0, len(raw))
	for i, configuration := range raw {
		decoded, err := params.DecodeMap(configuration, space)
		if err != nil {
			return nil, fmt.Errorf("failed to decode result configuration %d: %w", i, err)
		}
		results = append(results, decoded)
	}

	logger.Info("tuning run finished",
		"run_id", dispatcher.RunID(),
		"configurations", len(results))
	return results, nil
}

// Run bundles everything one tuning run needs, for use with MultiTune.
type Run[P any] struct {
	Runner    TargetRunner[P]
	Instances []Instance[P]
	Scenario  *Scenario
	Space     *params.Space
}

// NewRun creates a run bundle.
func NewRun[P any](runner TargetRunner[P], instances []Instance[P], scenario *Scenario, space *params.Space) Run[P] {
	return Run[P]{Runner: runner, Instances: instances, Scenario: scenario, Space: space}
}

// MultiTune executes several tuning runs, at most numJobs of them in
// parallel, and returns each run's decoded configurations in input order.
// If globalSeed is non-nil, runs without an explicit scenario seed are
// seeded deterministically from it. Failing runs do not abort their
// siblings; all failures are joined into the returned error.
func MultiTune[P any](runs []Run[P], numJobs int, globalSeed *uint32) ([][]params.Params, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs provided")
	}
	if numJobs < 1 {
		numJobs = 1
	}

	// Limit parallelism across runs.
	semaphore := make(chan struct{}, numJobs)
	var wg sync.WaitGroup
	results := make([][]params.Params, len(runs))
	failures := make([]error, len(runs))

	for i, run := range runs {
		wg.Add(1)
		go func(idx int, run Run[P]) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			scenario := deriveScenario(run.Scenario, globalSeed, idx)

			configurations, err := Tune(run.Runner, run.Instances, scenario, run.Space)
			if err != nil {
				failures[idx] = fmt.Errorf("run %d: %w", idx, err)
				return
			}
			results[idx] = configurations
		}(i, run)
	}

	wg.Wait()

	if err := errors.Join(failures...); err != nil {
		return results, err
	}
	return results, nil
}

// deriveScenario seeds a run's scenario from the global seed and the
// run's position, unless the run already carries an explicit seed.
func deriveScenario(scenario *Scenario, globalSeed *uint32, index int) *Scenario {
	if globalSeed == nil || scenario.Seed != nil {
		return scenario
	}
	derived := *scenario
	seed := uint64(*globalSeed) + uint64(index)
	derived.Seed = &seed
	return &derived
}
