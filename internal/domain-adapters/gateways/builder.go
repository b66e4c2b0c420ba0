// Package gateways implements the pipeline's adapters to external tools and
// remote channels.
package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harshitasao/verify-release/internal/config"
	"github.com/harshitasao/verify-release/internal/domain/entities"
	"github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
	"github.com/harshitasao/verify-release/internal/logger"
)

// Builder produces a canonical release artifact set from the committed state
// of a source tree.
type Builder struct {
	runner gateways.CommandRunner
	cfg    *config.Config
}

// NewBuilder creates a local builder.
func NewBuilder(runner gateways.CommandRunner, cfg *config.Config) *Builder {
	return &Builder{runner: runner, cfg: cfg}
}

// Build clones sourceDir from version-control history into a scratch
// directory, builds the release artifacts into outputDir and returns the
// version embedded in the produced source distribution's filename.
//
// The clone is what keeps the build clean-room: uncommitted edits in
// sourceDir cannot leak into the release.
func (b *Builder) Build(ctx context.Context, sourceDir, outputDir string) (string, error) {
	cloneDir, err := os.MkdirTemp("", "verify-release-src-")
	if err != nil {
		return "", fmt.Errorf("create clone directory: %w", err)
	}
	defer os.RemoveAll(cloneDir) //nolint:errcheck // Best effort scratch cleanup.

	clone := b.runner.Run(ctx, gateways.CommandSpec{
		Name:    "git",
		Args:    []string{"clone", "--quiet", sourceDir, cloneDir},
		Timeout: b.cfg.BuildTimeout,
	})
	if !clone.Success {
		return "", fmt.Errorf("%w: git clone exited %d: %s",
			entities.ErrBuildFailed, clone.ExitCode, clone.Stderr)
	}

	env := map[string]string{}
	if b.cfg.BuildConstraints != "" {
		// Pin the build backend for the child process only.
		env["PIP_CONSTRAINT"] = filepath.Join(cloneDir, b.cfg.BuildConstraints)
	}

	build := b.runner.Run(ctx, gateways.CommandSpec{
		Name:    "python3",
		Args:    []string{"-m", "build", "--outdir", outputDir, cloneDir},
		Env:     env,
		Timeout: b.cfg.BuildTimeout,
	})
	if !build.Success {
		return "", fmt.Errorf("%w: build backend exited %d: %s",
			entities.ErrBuildFailed, build.ExitCode, build.Stderr)
	}

	version, err := b.versionFromOutput(ctx, outputDir)
	if err != nil {
		return "", err
	}

	logger.Infof(ctx, "built %s %s into %s", b.cfg.ProjectName, version, outputDir)

	return version, nil
}

// versionFromOutput scans the build output for the source distribution and
// parses its version. Filenames not matching the convention are ignored.
func (b *Builder) versionFromOutput(ctx context.Context, outputDir string) (string, error) {
	files, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("read build output: %w", err)
	}

	for _, file := range files {
		version, err := entities.ParseSourceDistVersion(file.Name(), b.cfg.ProjectName)
		if err != nil {
			logger.Debugf(ctx, "skipping %s: %v", file.Name(), err)
			continue
		}

		return version, nil
	}

	return "", fmt.Errorf("%w: no %s-{version}.tar.gz in %s",
		entities.ErrVersionNotFound, b.cfg.ProjectName, outputDir)
}
