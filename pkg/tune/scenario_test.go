package tune

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	scenario := DefaultScenario()

	if !scenario.Elitist {
		t.Error("Expected elitist racing by default")
	}
	if scenario.Deterministic {
		t.Error("Expected stochastic target by default")
	}
	if scenario.NumJobs != 1 {
		t.Errorf("Expected 1 job by default, got %d", scenario.NumJobs)
	}
	if scenario.Verbose != VerbositySilent {
		t.Errorf("Expected silent verbosity by default, got '%s'", scenario.Verbose)
	}
	if scenario.Seed != nil {
		t.Error("Expected no seed by default")
	}
}

func TestParseScenarioYAML(t *testing.T) {
	scenario, err := ParseScenarioYAMLString(`
max_experiments: 500
min_experiments: 100
deterministic: true
n_jobs: 4
seed: 42
verbose: standard
log_file: irace.log
history_file: history.db
`)
	if err != nil {
		t.Fatalf("Failed to parse scenario: %v", err)
	}

	if scenario.MaxExperiments != 500 {
		t.Errorf("Expected max_experiments 500, got %d", scenario.MaxExperiments)
	}
	if scenario.MinExperiments != 100 {
		t.Errorf("Expected min_experiments 100, got %d", scenario.MinExperiments)
	}
	if !scenario.Deterministic {
		t.Error("Expected deterministic target")
	}
	// Omitted fields keep defaults.
	if !scenario.Elitist {
		t.Error("Expected elitist default to survive partial yaml")
	}
	if scenario.NumJobs != 4 {
		t.Errorf("Expected 4 jobs, got %d", scenario.NumJobs)
	}
	if scenario.Seed == nil || *scenario.Seed != 42 {
		t.Errorf("Expected seed 42, got %v", scenario.Seed)
	}
	if scenario.Verbose != VerbosityStandard {
		t.Errorf("Expected standard verbosity, got '%s'", scenario.Verbose)
	}
	if scenario.LogFile != "irace.log" {
		t.Errorf("Expected log_file 'irace.log', got '%s'", scenario.LogFile)
	}
	if scenario.HistoryFile != "history.db" {
		t.Errorf("Expected history_file 'history.db', got '%s'", scenario.HistoryFile)
	}
}

func TestParseScenarioYAMLInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"missing budget", `n_jobs: 1`, "max_experiments"},
		{"min above max", "max_experiments: 10\nmin_experiments: 20", "min_experiments"},
		{"zero jobs", "max_experiments: 10\nn_jobs: 0", "n_jobs"},
		{"bad verbosity", "max_experiments: 10\nverbose: loud", "verbose"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenarioYAMLString(tc.yaml)
			if err == nil {
				t.Fatal("Expected parse to fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error mentioning '%s', got: %v", tc.want, err)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	err := os.WriteFile(path, []byte("max_experiments: 200\nn_jobs: 2\n"), 0o644)
	if err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}
	if scenario.MaxExperiments != 200 || scenario.NumJobs != 2 {
		t.Errorf("Unexpected scenario: %+v", scenario)
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected load of missing file to fail")
	}
}

func TestVerbosityLevels(t *testing.T) {
	levels := map[Verbosity]int{
		VerbositySilent:   0,
		VerbosityMinimal:  1,
		VerbosityStandard: 2,
		VerbosityDebug:    3,
	}
	for verbosity, expected := range levels {
		if got := verbosity.Level(); got != expected {
			t.Errorf("Expected level %d for '%s', got %d", expected, verbosity, got)
		}
	}
}

func TestEncodeScenario(t *testing.T) {
	seed := uint64(7)
	scenario := DefaultScenario()
	scenario.MaxExperiments = 100
	scenario.Seed = &seed
	scenario.Verbose = VerbosityDebug

	record := encodeScenario(scenario, 3)

	if record.MaxExperiments != 100 {
		t.Errorf("Expected max_experiments 100, got %d", record.MaxExperiments)
	}
	// Instances cross the boundary as indices only.
	if !reflect.DeepEqual(record.Instances, []int{0, 1, 2}) {
		t.Errorf("Expected instance indices [0 1 2], got %v", record.Instances)
	}
	if record.Seed == nil || *record.Seed != 7 {
		t.Errorf("Expected seed 7, got %v", record.Seed)
	}
	if record.Verbose != 3 {
		t.Errorf("Expected verbose 3, got %d", record.Verbose)
	}
}
