package tune

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2"

	"github.com/Saethox/irace-go/internal/engine"
	"github.com/Saethox/irace-go/internal/history"
	"github.com/Saethox/irace-go/pkg/logger"
	"github.com/Saethox/irace-go/pkg/params"
)

// decodeCacheSize bounds the per-run cache of decoded configurations.
// The engine re-races elite configurations under fresh seeds and
// instances, so the same configuration id recurs many times per run.
const decodeCacheSize = 256

// Dispatcher is the single non-generic entry point the engine calls back
// into. It owns everything one invocation needs: the erased runner, the
// instance registry, the parameter space acting as decode schema, the
// scenario, and the experiment history. All of it is read-only once the
// run starts, so Invoke is safe for concurrent use.
type Dispatcher struct {
	runID    string
	runner   erasedRunner
	registry *Registry
	space    *params.Space
	scenario *Scenario

	cache   *lru.Cache[string, params.Params]
	history history.Store
}

// NewDispatcher builds the dispatch adapter for one run. The instance
// slice is erased into the registry; the scenario's HistoryFile selects
// the history backend (SQLite when set, in-memory otherwise).
func NewDispatcher[P any](runner TargetRunner[P], instances []Instance[P], scenario *Scenario, space *params.Space) (*Dispatcher, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	store, err := history.NewStore(scenario.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create history store: %w", err)
	}
	if err := store.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	cache, err := lru.New[string, params.Params](decodeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create decode cache: %w", err)
	}

	return &Dispatcher{
		runID:    uuid.NewString(),
		runner:   runnerWrapper[P]{runner: runner},
		registry: NewRegistry(instances...),
		space:    space,
		scenario: scenario,
		cache:    cache,
		history:  store,
	}, nil
}

// RunID returns the identifier of this dispatcher's tuning run.
func (d *Dispatcher) RunID() string {
	return d.runID
}

// NumInstances returns the number of registered instances.
func (d *Dispatcher) NumInstances() int {
	return d.registry.Len()
}

// Invoke serves one raw engine callback: decode the configuration against
// the schema, re-specialize to the concrete problem type, run the host
// logic, and record the outcome. Errors fail this invocation only.
func (d *Dispatcher) Invoke(raw *engine.Experiment) (float64, error) {
	decoded, err := d.decode(raw)
	if err != nil {
		d.record(raw, 0, err)
		return 0, err
	}

	cost, err := d.runner.run(d.scenario, d.registry, raw, decoded)
	d.record(raw, cost, err)
	if err != nil {
		return 0, err
	}

	logger.Debug("experiment finished",
		"run_id", d.runID,
		"configuration_id", raw.ConfigurationID,
		"cost", cost)
	return cost, nil
}

// History lists the experiments recorded so far for this run.
func (d *Dispatcher) History(ctx context.Context) ([]history.Record, error) {
	return d.history.ListExperiments(ctx, d.runID)
}

// Close releases the history backend.
func (d *Dispatcher) Close() error {
	return d.history.Close()
}

// decode returns the typed parameters for a raw configuration, reusing
// the cached decode when the engine repeats a configuration id.
func (d *Dispatcher) decode(raw *engine.Experiment) (params.Params, error) {
	if cached, ok := d.cache.Get(raw.ConfigurationID); ok {
		return cached, nil
	}

	decoded, err := params.DecodeMap(raw.Configuration, d.space)
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", raw.ConfigurationID, err)
	}

	d.cache.Add(raw.ConfigurationID, decoded)
	return decoded, nil
}

func (d *Dispatcher) record(raw *engine.Experiment, cost float64, runErr error) {
	record := history.Record{
		ID:              uuid.NewString(),
		RunID:           d.runID,
		ConfigurationID: raw.ConfigurationID,
		Seed:            raw.Seed,
		Cost:            cost,
		CreatedAtUnixMs: time.Now().UTC().UnixMilli(),
	}
	if raw.InstanceID != nil {
		record.InstanceID = *raw.InstanceID
	}
	if runErr != nil {
		record.Failed = true
		record.Error = runErr.Error()
	}

	if err := d.history.SaveExperiment(context.Background(), record); err != nil {
		logger.Warn("failed to record experiment",
			"run_id", d.runID,
			"configuration_id", raw.ConfigurationID,
			"error", err)
	}
}
