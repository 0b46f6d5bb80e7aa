package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

var commandContext = exec.CommandContext

// RunResult captures the outcome of one external tool invocation
type RunResult struct {
	// ExitOK is true when the process exited with status zero
	ExitOK bool
	// Output is the captured diagnostic (stderr) text
	Output string
	// TimedOut is true when the process was killed by the time budget
	TimedOut bool
}

// ProcessRunner defines the narrow capability needed to run the external
// media tool: an argument list and a wall-clock budget in, the exit status
// and captured diagnostics out. The interpretation logic is tested against
// this seam without spawning real processes.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (*RunResult, error)
}

// ExecRunner runs commands through os/exec with a hard wall-clock timeout
type ExecRunner struct {
	logger *zap.Logger
}

// NewExecRunner creates a new exec-backed process runner
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	return &ExecRunner{
		logger: logger,
	}
}

// Run executes the command and waits for it to finish. On timeout expiry the
// child is killed and reaped before Run returns; a non-zero exit status is
// reported through RunResult, not as an error. The returned error is
// reserved for faults that prevented the process from running at all.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := commandContext(runCtx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		r.logger.Debug("Process killed by timeout",
			zap.String("binary", name),
			zap.Duration("timeout", timeout))
		return &RunResult{Output: stderr.String(), TimedOut: true}, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &RunResult{ExitOK: false, Output: stderr.String()}, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return &RunResult{ExitOK: true, Output: stderr.String()}, nil
}
