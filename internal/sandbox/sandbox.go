// Package sandbox executes untrusted source text as a child process
// under a wall-clock limit. Containment is the process boundary plus
// the timeout, nothing more: no namespaces, no memory cap, no
// privilege drop. The Runner interface keeps the door open for a
// stronger backend without changing the harness or verdict contracts.
package sandbox

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// Constraints bound a single execution.
type Constraints struct {
	WallTime time.Duration
}

// DefaultConstraints matches the platform-wide 5 second limit.
func DefaultConstraints() Constraints {
	return Constraints{WallTime: 5 * time.Second}
}

// RunResult captures everything observable about a finished process.
// Stdout and stderr are read in full after exit, not streamed.
type RunResult struct {
	Stdout     string
	Stderr     string
	ExitCode   int
	TimedOut   bool
	WallMillis int64
}

// Runner executes a complete program's source text.
//
// A timeout is reported through RunResult.TimedOut, not as an error;
// errors are reserved for infrastructure faults such as a missing
// interpreter or an unwritable temp directory.
type Runner interface {
	Run(ctx context.Context, lang Lang, source string, constraints Constraints) (*RunResult, error)
}

type processRunner struct{}

// NewProcessRunner returns the process-level Runner used in production.
func NewProcessRunner() Runner { return processRunner{} }

func (processRunner) Run(ctx context.Context, lang Lang, source string, constraints Constraints) (*RunResult, error) {
	interpreter, err := lang.LookupInterpreter()
	if err != nil {
		return nil, err
	}

	file, err := os.CreateTemp("", "submission-*"+lang.Ext)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp source file")
	}
	path := file.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to remove temp source file", "path", path, "error", err)
		}
	}()

	if _, err := file.WriteString(source); err != nil {
		file.Close()
		return nil, errors.Wrap(err, "failed to write temp source file")
	}
	if err := file.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close temp source file")
	}

	runCtx, cancel := context.WithTimeout(ctx, constraints.WallTime)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, interpreter, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	runErr := cmd.Run()
	wallMillis := time.Since(started).Milliseconds()

	if runCtx.Err() == context.DeadlineExceeded {
		// The process was killed mid-write; partial output is not
		// trusted on this path.
		return &RunResult{TimedOut: true, ExitCode: -1, WallMillis: wallMillis}, nil
	}

	res := &RunResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		WallMillis: wallMillis,
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			if errors.Is(runErr, exec.ErrNotFound) {
				return nil, &InterpreterMissingError{Lang: lang}
			}
			return nil, errors.Wrap(runErr, "failed to launch interpreter")
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}
