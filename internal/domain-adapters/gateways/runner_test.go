package gateways

import (
	"context"

	"github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
)

// fakeRunner routes every invocation through a test-provided function and
// records the specs it saw.
type fakeRunner struct {
	fn    func(spec gateways.CommandSpec) *gateways.CommandResult
	specs []gateways.CommandSpec
}

func (f *fakeRunner) Run(_ context.Context, spec gateways.CommandSpec) *gateways.CommandResult {
	f.specs = append(f.specs, spec)

	if f.fn == nil {
		return &gateways.CommandResult{Success: true}
	}

	return f.fn(spec)
}

func commandOK(stdout string) *gateways.CommandResult {
	return &gateways.CommandResult{Success: true, Stdout: stdout}
}

func commandFail(exitCode int, stderr string) *gateways.CommandResult {
	return &gateways.CommandResult{ExitCode: exitCode, Stderr: stderr}
}
