// Package gateways defines the contracts the verification pipeline consumes.
package gateways

import (
	"context"
	"time"

	"github.com/harshitasao/verify-release/internal/domain/entities"
)

// Channel is a remote distribution point from which released artifacts can be
// independently retrieved. Both channels offer the same capability pair, so
// the orchestrator iterates them uniformly.
type Channel interface {
	// Name identifies the channel in results and messages.
	Name() string

	// ResolveLatest returns the channel's latest published version in
	// canonical form.
	ResolveLatest(ctx context.Context) (string, error)

	// FetchArtifactSet retrieves both artifact kinds for the target
	// version into destDir.
	FetchArtifactSet(ctx context.Context, version, destDir string) (*entities.ArtifactSet, error)
}

// CommandRunner abstracts external tool invocations (git, build backend,
// package manager, signing tool) so components stay testable without the
// tools installed.
type CommandRunner interface {
	Run(ctx context.Context, spec CommandSpec) *CommandResult
}

// CommandSpec describes a single subprocess invocation.
type CommandSpec struct {
	Name    string
	Args    []string
	Dir     string
	Env     map[string]string
	Timeout time.Duration // zero means the runner default
}

// CommandResult captures the outcome of a subprocess invocation.
type CommandResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}
