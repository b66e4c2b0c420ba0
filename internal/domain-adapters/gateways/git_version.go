package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/harshitasao/verify-release/internal/domain/entities"
	"github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
)

// GitVersionResolver derives the authoritative version from version-control
// history.
type GitVersionResolver struct {
	runner    gateways.CommandRunner
	sourceDir string
}

// NewGitVersionResolver creates a resolver running against sourceDir.
func NewGitVersionResolver(runner gateways.CommandRunner, sourceDir string) *GitVersionResolver {
	return &GitVersionResolver{runner: runner, sourceDir: sourceDir}
}

// Resolve runs "git describe" and strips the tag marker. The raw output must
// start with "v" and be newline-terminated; anything else violates the tag
// convention and is ErrUnexpectedFormat.
func (g *GitVersionResolver) Resolve(ctx context.Context) (string, error) {
	describe := g.runner.Run(ctx, gateways.CommandSpec{
		Name: "git",
		Args: []string{"describe"},
		Dir:  g.sourceDir,
	})
	if !describe.Success {
		return "", fmt.Errorf("%w: git describe exited %d: %s",
			entities.ErrUnexpectedFormat, describe.ExitCode, describe.Stderr)
	}

	raw := describe.Stdout
	if !strings.HasPrefix(raw, "v") || !strings.HasSuffix(raw, "\n") {
		return "", fmt.Errorf("%w: git describe output %q", entities.ErrUnexpectedFormat, raw)
	}

	return strings.TrimSuffix(strings.TrimPrefix(raw, "v"), "\n"), nil
}
