package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Saethox/irace-go/pkg/logger"
)

// maxMessageBytes bounds a single protocol line. Configuration records are
// small; this is generous headroom.
const maxMessageBytes = 16 * 1024 * 1024

// Callback handles one experiment request. It is invoked concurrently up
// to the session's job count and must be safe for concurrent use.
type Callback func(experiment *Experiment) (float64, error)

// Session runs one tuning session over a transport: it sends the start
// message, serves experiment callbacks until the engine reports the final
// result, and returns the raw configuration records in engine order.
type Session struct {
	transport Transport
	numJobs   int
	callback  Callback

	writeMu sync.Mutex
	encoder *json.Encoder
}

// NewSession creates a session over the given transport. numJobs bounds
// how many experiment callbacks run concurrently; values below 1 are
// treated as 1.
func NewSession(transport Transport, numJobs int, callback Callback) *Session {
	if numJobs < 1 {
		numJobs = 1
	}
	return &Session{
		transport: transport,
		numJobs:   numJobs,
		callback:  callback,
		encoder:   json.NewEncoder(transport),
	}
}

// Run executes the session to completion. A failing experiment callback
// is answered with an error reply for that invocation only; sibling
// invocations proceed. Run returns an error only if the session itself
// breaks: a transport failure, a malformed message, or a fatal report
// from the engine.
func (s *Session) Run(start *StartMessage) ([]map[string]any, error) {
	if err := s.send(start); err != nil {
		return nil, fmt.Errorf("failed to send start message: %w", err)
	}

	// Bound concurrent experiment callbacks to the configured job count.
	semaphore := make(chan struct{}, s.numJobs)
	var wg sync.WaitGroup

	scanner := bufio.NewScanner(s.transport)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg envelope
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse engine message: %w", err)
		}

		switch msg.Type {
		case msgExperiment:
			if msg.Experiment == nil {
				return nil, fmt.Errorf("experiment message %d carries no experiment", msg.ID)
			}
			wg.Add(1)
			go func(id uint64, experiment *Experiment) {
				defer wg.Done()
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				s.serve(id, experiment)
			}(msg.ID, msg.Experiment)

		case msgDone:
			wg.Wait()
			return msg.Configurations, nil

		case msgFatal:
			wg.Wait()
			return nil, fmt.Errorf("engine failed: %s", msg.Message)

		default:
			return nil, fmt.Errorf("unexpected engine message type: %s", msg.Type)
		}
	}

	wg.Wait()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read from engine: %w", err)
	}
	return nil, fmt.Errorf("engine closed the transport without a result")
}

// serve invokes the callback for one experiment and writes the reply.
func (s *Session) serve(id uint64, experiment *Experiment) {
	cost, err := s.callback(experiment)

	var response reply
	if err != nil {
		logger.Warn("experiment failed",
			"configuration_id", experiment.ConfigurationID,
			"error", err)
		response = reply{Type: msgError, ID: id, Message: err.Error()}
	} else {
		response = reply{Type: msgResult, ID: id, Cost: cost}
	}

	if err := s.send(response); err != nil {
		logger.Error("failed to send experiment reply", "id", id, "error", err)
	}
}

func (s *Session) send(msg any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.encoder.Encode(msg)
}
