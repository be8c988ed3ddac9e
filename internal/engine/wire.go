// Package engine is the boundary adapter to the external iterated-racing
// engine. The engine runs inside an embedded Python interpreter spawned as
// a subprocess; both sides speak a newline-delimited JSON protocol over
// the subprocess pipes. stdout carries protocol messages, stderr carries
// the engine's own output.
//
// The protocol is request/response with engine-initiated experiments:
//
//	host -> engine   {"type": "start", "scenario": ..., "parameter_space": ..., "instances": N}
//	engine -> host   {"type": "experiment", "id": k, "experiment": {...}}
//	host -> engine   {"type": "result", "id": k, "cost": c}
//	host -> engine   {"type": "error", "id": k, "message": ...}
//	engine -> host   {"type": "done", "configurations": [...]}
//	engine -> host   {"type": "fatal", "message": ...}
//
// Experiment requests may be issued concurrently up to the scenario's job
// count; result replies are matched to requests by id.
package engine

import (
	"github.com/Saethox/irace-go/pkg/params"
)

// Protocol message type tags.
const (
	msgStart      = "start"
	msgExperiment = "experiment"
	msgResult     = "result"
	msgError      = "error"
	msgDone       = "done"
	msgFatal      = "fatal"
)

// ScenarioRecord is the engine-facing encoding of the run's scenario.
// Instances are exposed to the engine as opaque indices only.
type ScenarioRecord struct {
	MaxExperiments uint32  `json:"max_experiments,omitempty"`
	MinExperiments uint32  `json:"min_experiments,omitempty"`
	Elitist        bool    `json:"elitist"`
	Deterministic  bool    `json:"deterministic"`
	LogFile        string  `json:"log_file,omitempty"`
	ExecDir        string  `json:"exec_dir,omitempty"`
	Instances      []int   `json:"instances"`
	NumJobs        int     `json:"n_jobs"`
	Seed           *uint64 `json:"seed,omitempty"`
	Verbose        int     `json:"verbose"`
}

// StartMessage is the first message of a session, sent host to engine.
type StartMessage struct {
	Type           string          `json:"type"`
	Scenario       ScenarioRecord  `json:"scenario"`
	ParameterSpace []params.Record `json:"parameter_space"`
}

// NewStartMessage assembles the start message for one session.
func NewStartMessage(scenario ScenarioRecord, space []params.Record) *StartMessage {
	return &StartMessage{
		Type:           msgStart,
		Scenario:       scenario,
		ParameterSpace: space,
	}
}

// Experiment is the raw, untyped payload of one engine callback: the
// per-invocation record before any schema-directed decoding or instance
// resolution has happened.
type Experiment struct {
	ConfigurationID string         `json:"configuration_id"`
	Seed            uint64         `json:"seed"`
	InstanceID      *string        `json:"instance_id,omitempty"`
	Instance        *int           `json:"instance,omitempty"`
	Configuration   map[string]any `json:"configuration"`
}

// envelope is the decoded form of any engine-to-host message.
type envelope struct {
	Type           string           `json:"type"`
	ID             uint64           `json:"id"`
	Experiment     *Experiment      `json:"experiment,omitempty"`
	Configurations []map[string]any `json:"configurations,omitempty"`
	Message        string           `json:"message,omitempty"`
}

// reply is a host-to-engine response to one experiment request.
type reply struct {
	Type    string  `json:"type"`
	ID      uint64  `json:"id"`
	Cost    float64 `json:"cost"`
	Message string  `json:"message,omitempty"`
}
