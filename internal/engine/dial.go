package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

//go:embed driver.py
var driverSource string

// Transport is a bidirectional byte stream to the engine. The production
// transport is the driver subprocess's stdio; tests substitute in-memory
// pipes.
type Transport interface {
	io.Reader
	io.Writer
	Close() error
}

// processTransport adapts a running driver subprocess to Transport.
type processTransport struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (t *processTransport) Read(p []byte) (int, error) {
	return t.stdout.Read(p)
}

func (t *processTransport) Write(p []byte) (int, error) {
	return t.stdin.Write(p)
}

// Close shuts the driver down by closing its stdin and reaping the
// process. A non-zero exit after a completed session is reported as an
// error.
func (t *processTransport) Close() error {
	closeErr := t.stdin.Close()
	waitErr := t.cmd.Wait()
	return errors.Join(closeErr, waitErr)
}

// Dial bootstraps the interpreter and spawns the engine driver
// subprocess. If quiet is true the engine's stderr is discarded;
// otherwise it is passed through to the host's stderr.
func Dial(quiet bool) (Transport, error) {
	python, err := Bootstrap()
	if err != nil {
		return nil, err
	}

	// -u keeps the protocol pipe unbuffered on the Python side.
	cmd := exec.Command(python, "-u", "-c", driverSource)
	if quiet {
		cmd.Stderr = io.Discard
	} else {
		cmd.Stderr = os.Stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open driver stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open driver stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine driver: %w", err)
	}

	return &processTransport{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}
