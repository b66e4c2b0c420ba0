package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
	"github.com/harshitasao/verify-release/internal/logger"
)

// ExecRunner runs external tools (git, build backend, package manager,
// signing tool) as blocking subprocesses.
type ExecRunner struct {
	defaultTimeout time.Duration
}

// NewExecRunner creates a runner with the given default timeout per command.
func NewExecRunner(defaultTimeout time.Duration) *ExecRunner {
	if defaultTimeout == 0 {
		defaultTimeout = 30 * time.Minute
	}

	return &ExecRunner{defaultTimeout: defaultTimeout}
}

// Run executes the command described by spec and captures its output.
func (r *ExecRunner) Run(ctx context.Context, spec gateways.CommandSpec) *gateways.CommandResult {
	result := &gateways.CommandResult{}

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = r.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // G204: Invocations are fixed tools with computed arguments.
	cmd := exec.CommandContext(execCtx, spec.Name, spec.Args...)

	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}

	// Child-process env only; the parent environment is never mutated.
	env := os.Environ()
	for key, value := range spec.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	logger.Debugf(ctx, "ran %s %v in %v", spec.Name, spec.Args, time.Since(start))

	if err != nil {
		result.Err = err

		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
		case errors.Is(execCtx.Err(), context.DeadlineExceeded):
			result.Err = fmt.Errorf("%s timed out after %v", spec.Name, timeout)
			result.ExitCode = -1
		default:
			result.ExitCode = -1
		}

		return result
	}

	result.Success = true

	return result
}
