// Package tune is the typed front of the iterated-racing engine: it holds
// the scenario configuration, the instance registry, the target-runner
// erasure, and the Tune entry points that drive one engine session.
package tune

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Saethox/irace-go/internal/engine"
)

// Verbosity controls the engine's stdout output.
type Verbosity string

const (
	// VerbositySilent suppresses all engine output
	VerbositySilent Verbosity = "silent"
	// VerbosityMinimal keeps only progress summaries
	VerbosityMinimal Verbosity = "minimal"
	// VerbosityStandard is the engine's normal output
	VerbosityStandard Verbosity = "standard"
	// VerbosityDebug includes the engine's debug messages
	VerbosityDebug Verbosity = "debug"
)

// Level returns the numeric verbosity passed across the boundary (0..3).
func (v Verbosity) Level() int {
	switch v {
	case VerbosityMinimal:
		return 1
	case VerbosityStandard:
		return 2
	case VerbosityDebug:
		return 3
	default:
		return 0
	}
}

func (v Verbosity) valid() bool {
	switch v {
	case VerbositySilent, VerbosityMinimal, VerbosityStandard, VerbosityDebug:
		return true
	default:
		return false
	}
}

// Scenario bundles the static run-level configuration passed opaquely to
// the engine. Only a subset of the engine's full option surface is
// supported. A Scenario is read-only for the duration of a run.
type Scenario struct {
	// MaxExperiments is the upper bound of experiments to perform
	// (the tuning budget).
	MaxExperiments uint32 `yaml:"max_experiments"`
	// MinExperiments is the lower bound of experiments; zero leaves
	// the choice to the engine.
	MinExperiments uint32 `yaml:"min_experiments,omitempty"`
	// Elitist selects elitist racing. Defaults to true.
	Elitist bool `yaml:"elitist"`
	// Deterministic declares the target algorithm deterministic, so
	// the engine does not repeat configurations under fresh seeds.
	Deterministic bool `yaml:"deterministic"`
	// LogFile is the engine's own log file path, passed through opaquely.
	LogFile string `yaml:"log_file,omitempty"`
	// HistoryFile, when set, is the path of the SQLite experiment
	// history the host writes during the run.
	HistoryFile string `yaml:"history_file,omitempty"`
	// ExecDir is the engine's working directory for run artifacts.
	ExecDir string `yaml:"exec_dir,omitempty"`
	// NumJobs is the number of experiments performed in parallel.
	// Defaults to 1.
	NumJobs int `yaml:"n_jobs"`
	// Seed is the initial RNG seed; nil lets the engine pick one.
	Seed *uint64 `yaml:"seed,omitempty"`
	// Verbose is the engine's stdout verbosity. Defaults to silent.
	Verbose Verbosity `yaml:"verbose"`
}

// DefaultScenario returns a scenario with documented defaults: elitist
// racing, stochastic target, one job, silent engine output, no budget.
// MaxExperiments must still be set before the scenario is usable.
func DefaultScenario() *Scenario {
	return &Scenario{
		Elitist: true,
		NumJobs: 1,
		Verbose: VerbositySilent,
	}
}

// ParseScenarioYAML parses a Scenario from YAML bytes and validates it.
// Omitted fields keep the DefaultScenario values.
func ParseScenarioYAML(data []byte) (*Scenario, error) {
	scenario := DefaultScenario()
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenarioYAMLString parses a Scenario from a YAML string and validates it.
func ParseScenarioYAMLString(yamlText string) (*Scenario, error) {
	return ParseScenarioYAML([]byte(yamlText))
}

// LoadScenario loads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	scenario, err := ParseScenarioYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return scenario, nil
}

// validateScenario performs validation on the scenario configuration.
func validateScenario(s *Scenario) error {
	if s.MaxExperiments == 0 {
		return fmt.Errorf("max_experiments must be positive")
	}
	if s.MinExperiments > s.MaxExperiments {
		return fmt.Errorf("min_experiments (%d) cannot exceed max_experiments (%d)",
			s.MinExperiments, s.MaxExperiments)
	}
	if s.NumJobs < 1 {
		return fmt.Errorf("n_jobs must be at least 1, got %d", s.NumJobs)
	}
	if !s.Verbose.valid() {
		return fmt.Errorf("invalid verbose: %s (must be silent, minimal, standard, or debug)", s.Verbose)
	}
	return nil
}

// encodeScenario produces the engine-facing scenario record. Instances
// are exposed as indices 0..numInstances.
func encodeScenario(s *Scenario, numInstances int) engine.ScenarioRecord {
	instances := make([]int, numInstances)
	for i := range instances {
		instances[i] = i
	}
	return engine.ScenarioRecord{
		MaxExperiments: s.MaxExperiments,
		MinExperiments: s.MinExperiments,
		Elitist:        s.Elitist,
		Deterministic:  s.Deterministic,
		LogFile:        s.LogFile,
		ExecDir:        s.ExecDir,
		Instances:      instances,
		NumJobs:        s.NumJobs,
		Seed:           s.Seed,
		Verbose:        s.Verbose.Level(),
	}
}
