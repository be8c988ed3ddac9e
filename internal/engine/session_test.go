package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/Saethox/irace-go/pkg/params"
)

// pipeTransport is an in-memory Transport backed by io.Pipe pairs.
type pipeTransport struct {
	io.Reader
	io.Writer
}

func (pipeTransport) Close() error { return nil }

// fakeEngine is the engine side of an in-memory session: it reads the
// start message, issues experiment requests, collects replies, and
// reports a final configuration list.
type fakeEngine struct {
	decoder *json.Decoder
	encoder *json.Encoder

	mu      sync.Mutex
	replies map[uint64]reply
}

func newFakePair() (Transport, *fakeEngine) {
	hostToEngine, hostWriter := io.Pipe()
	engineToHost, engineWriter := io.Pipe()

	transport := pipeTransport{Reader: engineToHost, Writer: hostWriter}
	engine := &fakeEngine{
		decoder: json.NewDecoder(hostToEngine),
		encoder: json.NewEncoder(engineWriter),
		replies: make(map[uint64]reply),
	}
	return transport, engine
}

func (e *fakeEngine) readStart(t *testing.T) StartMessage {
	t.Helper()
	var start StartMessage
	if err := e.decoder.Decode(&start); err != nil {
		t.Errorf("Failed to read start message: %v", err)
	}
	return start
}

func (e *fakeEngine) sendExperiment(t *testing.T, id uint64, experiment Experiment) {
	t.Helper()
	err := e.encoder.Encode(map[string]any{
		"type":       msgExperiment,
		"id":         id,
		"experiment": experiment,
	})
	if err != nil {
		t.Errorf("Failed to send experiment %d: %v", id, err)
	}
}

func (e *fakeEngine) readReply(t *testing.T) reply {
	t.Helper()
	var r reply
	if err := e.decoder.Decode(&r); err != nil {
		t.Errorf("Failed to read reply: %v", err)
	}
	e.mu.Lock()
	e.replies[r.ID] = r
	e.mu.Unlock()
	return r
}

func (e *fakeEngine) sendDone(t *testing.T, configurations []map[string]any) {
	t.Helper()
	err := e.encoder.Encode(map[string]any{
		"type":           msgDone,
		"configurations": configurations,
	})
	if err != nil {
		t.Errorf("Failed to send done: %v", err)
	}
}

func startRecord() *StartMessage {
	lower, upper := 0.0, 1.0
	return NewStartMessage(
		ScenarioRecord{MaxExperiments: 10, Elitist: true, Instances: []int{0}, NumJobs: 1},
		[]params.Record{{Type: params.RecordReal, Name: "x", Lower: &lower, Upper: &upper}},
	)
}

func TestSessionRoundTrip(t *testing.T) {
	transport, fake := newFakePair()

	callback := func(experiment *Experiment) (float64, error) {
		x, _ := experiment.Configuration["x"].(float64)
		return x * 2, nil
	}
	session := NewSession(transport, 1, callback)

	var configurations []map[string]any
	done := make(chan error, 1)
	go func() {
		var err error
		configurations, err = session.Run(startRecord())
		done <- err
	}()

	start := fake.readStart(t)
	if start.Type != msgStart {
		t.Errorf("Expected start message, got type '%s'", start.Type)
	}
	if len(start.ParameterSpace) != 1 || start.ParameterSpace[0].Name != "x" {
		t.Errorf("Expected parameter space with 'x', got %+v", start.ParameterSpace)
	}
	if start.Scenario.MaxExperiments != 10 {
		t.Errorf("Expected max_experiments 10, got %d", start.Scenario.MaxExperiments)
	}

	for i := 0; i < 3; i++ {
		fake.sendExperiment(t, uint64(i), Experiment{
			ConfigurationID: fmt.Sprintf("%d", i),
			Seed:            uint64(100 + i),
			Configuration:   map[string]any{"x": float64(i) / 4},
		})
		r := fake.readReply(t)
		if r.Type != msgResult {
			t.Errorf("Expected result reply, got '%s'", r.Type)
		}
		if r.Cost != float64(i)/2 {
			t.Errorf("Expected cost %v, got %v", float64(i)/2, r.Cost)
		}
	}

	fake.sendDone(t, []map[string]any{{"x": 0.5}, {"x": 0.75}})

	if err := <-done; err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if len(configurations) != 2 {
		t.Fatalf("Expected 2 final configurations, got %d", len(configurations))
	}
	// Engine order is preserved.
	if configurations[0]["x"] != 0.5 || configurations[1]["x"] != 0.75 {
		t.Errorf("Expected configurations in engine order, got %v", configurations)
	}
}

func TestSessionExperimentErrorIsLocal(t *testing.T) {
	transport, fake := newFakePair()

	callback := func(experiment *Experiment) (float64, error) {
		if experiment.ConfigurationID == "bad" {
			return 0, fmt.Errorf("runner exploded")
		}
		return 1, nil
	}
	session := NewSession(transport, 1, callback)

	done := make(chan error, 1)
	go func() {
		_, err := session.Run(startRecord())
		done <- err
	}()

	fake.readStart(t)

	fake.sendExperiment(t, 0, Experiment{ConfigurationID: "bad", Configuration: map[string]any{}})
	r := fake.readReply(t)
	if r.Type != msgError {
		t.Errorf("Expected error reply for failing experiment, got '%s'", r.Type)
	}
	if r.Message != "runner exploded" {
		t.Errorf("Expected error message 'runner exploded', got '%s'", r.Message)
	}

	// A sibling invocation after the failure still succeeds.
	fake.sendExperiment(t, 1, Experiment{ConfigurationID: "good", Configuration: map[string]any{}})
	r = fake.readReply(t)
	if r.Type != msgResult || r.Cost != 1 {
		t.Errorf("Expected successful result after sibling failure, got %+v", r)
	}

	fake.sendDone(t, nil)
	if err := <-done; err != nil {
		t.Fatalf("Session failed: %v", err)
	}
}

func TestSessionConcurrentExperiments(t *testing.T) {
	transport, fake := newFakePair()

	const jobs = 4
	callback := func(experiment *Experiment) (float64, error) {
		return float64(experiment.Seed), nil
	}
	session := NewSession(transport, jobs, callback)

	done := make(chan error, 1)
	go func() {
		_, err := session.Run(startRecord())
		done <- err
	}()

	fake.readStart(t)

	// Issue a burst of requests before reading any reply; the session
	// must serve them from multiple goroutines without interleaving
	// corrupted frames on the shared pipe.
	const n = 8
	for i := 0; i < n; i++ {
		fake.sendExperiment(t, uint64(i), Experiment{
			ConfigurationID: fmt.Sprintf("%d", i),
			Seed:            uint64(i),
			Configuration:   map[string]any{},
		})
	}
	for i := 0; i < n; i++ {
		fake.readReply(t)
	}

	for id, r := range fake.replies {
		if r.Type != msgResult {
			t.Errorf("Expected result for request %d, got '%s'", id, r.Type)
		}
		if r.Cost != float64(id) {
			t.Errorf("Expected cost %d for request %d, got %v", id, id, r.Cost)
		}
	}
	if len(fake.replies) != n {
		t.Errorf("Expected %d distinct replies, got %d", n, len(fake.replies))
	}

	fake.sendDone(t, nil)
	if err := <-done; err != nil {
		t.Fatalf("Session failed: %v", err)
	}
}

func TestSessionFatal(t *testing.T) {
	transport, fake := newFakePair()
	session := NewSession(transport, 1, func(*Experiment) (float64, error) { return 0, nil })

	done := make(chan error, 1)
	go func() {
		_, err := session.Run(startRecord())
		done <- err
	}()

	fake.readStart(t)
	if err := fake.encoder.Encode(map[string]any{"type": msgFatal, "message": "no such package: irace"}); err != nil {
		t.Fatalf("Failed to send fatal: %v", err)
	}

	err := <-done
	if err == nil {
		t.Fatal("Expected session to fail on fatal message")
	}
}
