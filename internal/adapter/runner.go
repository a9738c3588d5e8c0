package adapter

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// TestRunnerAdapter spawns the test producer process and exposes its
// machine-output stream. It hides os/exec so the workflow's streaming logic
// can be tested against an in-memory stream.
type TestRunnerAdapter interface {
	// StartMachineRun launches the producer in dir and returns its stdout
	// together with a wait function that must be called after the stream
	// is drained. The producer exits non-zero when tests fail; that is not
	// a start error.
	StartMachineRun(ctx context.Context, dir, command string, args []string) (io.ReadCloser, func() error, error)
}

// LocalTestRunnerAdapter runs the producer via os/exec.
type LocalTestRunnerAdapter struct {
	// Stderr receives the producer's stderr when non-nil; the machine
	// protocol only ever uses stdout.
	Stderr io.Writer
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{}
}

// StartMachineRun launches the producer process.
func (a *LocalTestRunnerAdapter) StartMachineRun(ctx context.Context, dir, command string, args []string) (io.ReadCloser, func() error, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stderr = a.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to pipe producer output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start %q: %w", command, err)
	}

	return stdout, cmd.Wait, nil
}
