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

// PyPIChannel retrieves released artifacts through the package manager.
// The index has no direct "latest" query and no single call that returns
// both artifact kinds, so both operations are composed from pip downloads.
type PyPIChannel struct {
	runner gateways.CommandRunner
	cfg    *config.Config
}

// NewPyPIChannel creates the package-index channel.
func NewPyPIChannel(runner gateways.CommandRunner, cfg *config.Config) *PyPIChannel {
	return &PyPIChannel{runner: runner, cfg: cfg}
}

// Name identifies the channel in results and messages.
func (p *PyPIChannel) Name() string {
	return "PyPI"
}

// ResolveLatest simulates a latest-version query: an unconstrained download
// into a scratch directory, then the version is parsed from whichever file
// the package manager picked.
func (p *PyPIChannel) ResolveLatest(ctx context.Context) (string, error) {
	scratch, err := os.MkdirTemp("", "verify-release-pypi-latest-")
	if err != nil {
		return "", fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch) //nolint:errcheck // Best effort scratch cleanup.

	if err := p.pipDownload(ctx, scratch, p.cfg.PyPIProject); err != nil {
		return "", err
	}

	files, err := os.ReadDir(scratch)
	if err != nil {
		return "", fmt.Errorf("read scratch directory: %w", err)
	}

	for _, file := range files {
		version, err := entities.ParseDownloadVersion(file.Name(), p.cfg.PyPIProject)
		if err != nil {
			logger.Debugf(ctx, "skipping %s: %v", file.Name(), err)
			continue
		}

		return version, nil
	}

	return "", fmt.Errorf("%w: pip downloaded nothing recognizable for %s",
		entities.ErrFetchFailed, p.cfg.PyPIProject)
}

// FetchArtifactSet obtains both artifact kinds for the target version. Two
// downloads are needed: the unconstrained one may return either kind, the
// source-only one pins down the sdist.
func (p *PyPIChannel) FetchArtifactSet(ctx context.Context, version, destDir string) (*entities.ArtifactSet, error) {
	requirement := fmt.Sprintf("%s==%s", p.cfg.PyPIProject, version)

	if err := p.pipDownload(ctx, destDir, requirement); err != nil {
		return nil, err
	}

	if err := p.pipDownload(ctx, destDir, requirement, "--no-binary", p.cfg.PyPIProject); err != nil {
		return nil, err
	}

	set := &entities.ArtifactSet{
		Project: p.cfg.PyPIProject,
		Version: version,
		Dir:     destDir,
	}

	// pip exits zero even when it resolved something unexpected; the set is
	// only usable if both conventional filenames actually landed.
	for _, kind := range entities.Kinds() {
		if _, err := os.Stat(set.Path(kind)); err != nil {
			return nil, fmt.Errorf("%w: %s missing after pip download",
				entities.ErrFetchFailed, filepath.Base(set.Path(kind)))
		}
	}

	return set, nil
}

func (p *PyPIChannel) pipDownload(ctx context.Context, destDir, requirement string, extra ...string) error {
	args := []string{"download", "--no-deps", "--dest", destDir}
	args = append(args, extra...)
	args = append(args, requirement)

	result := p.runner.Run(ctx, gateways.CommandSpec{
		Name: "pip",
		Args: args,
	})
	if !result.Success {
		return fmt.Errorf("%w: pip download %s exited %d: %s",
			entities.ErrFetchFailed, requirement, result.ExitCode, result.Stderr)
	}

	return nil
}
