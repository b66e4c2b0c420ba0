// Package orchestrators coordinates the verification pipeline across the
// builder, version resolvers, channels, comparator and signer.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/harshitasao/verify-release/internal/config"
	"github.com/harshitasao/verify-release/internal/domain/entities"
	"github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
	"github.com/harshitasao/verify-release/internal/ui"
)

// Builder produces the local release artifact set and reports its version.
type Builder interface {
	Build(ctx context.Context, sourceDir, outputDir string) (string, error)
}

// VersionResolver derives the version from version-control history.
type VersionResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Comparator performs byte-exact comparison of artifact sets.
type Comparator interface {
	CompareArtifactSets(local, remote *entities.ArtifactSet) (bool, error)
}

// Signer produces detached signatures over a verified artifact set.
type Signer interface {
	SignArtifactSet(ctx context.Context, set *entities.ArtifactSet, outputDir string) ([]string, error)
}

// VerifyOrchestrator sequences the pipeline:
// Building -> ResolvingVersions -> FetchingAndComparing per channel ->
// Signing (optional) -> Done. Control flow is strictly sequential; a fetch
// must not begin before the build that defines the target version completes.
type VerifyOrchestrator struct {
	cfg        *config.Config
	builder    Builder
	vcs        VersionResolver
	channels   []gateways.Channel
	comparator Comparator
	signer     Signer // nil when signing was not requested
	printer    *ui.Printer
	sourceDir  string
	outputDir  string // where signature files land
}

// NewVerifyOrchestrator wires the pipeline. signer may be nil to disable the
// signing phase entirely.
func NewVerifyOrchestrator(
	cfg *config.Config,
	builder Builder,
	vcs VersionResolver,
	channels []gateways.Channel,
	comparator Comparator,
	signer Signer,
	printer *ui.Printer,
	sourceDir, outputDir string,
) *VerifyOrchestrator {
	return &VerifyOrchestrator{
		cfg:        cfg,
		builder:    builder,
		vcs:        vcs,
		channels:   channels,
		comparator: comparator,
		signer:     signer,
		printer:    printer,
		sourceDir:  sourceDir,
		outputDir:  outputDir,
	}
}

// Run executes one verification run and returns the aggregated report.
// A non-nil error means a hard failure that invalidated everything
// downstream (build or VCS version resolution); channel-level failures are
// folded into the report instead.
func (o *VerifyOrchestrator) Run(ctx context.Context) (*entities.RunReport, error) {
	report := &entities.RunReport{}

	buildDir, err := os.MkdirTemp("", "verify-release-build-")
	if err != nil {
		return nil, fmt.Errorf("create build directory: %w", err)
	}
	defer os.RemoveAll(buildDir) //nolint:errcheck // Best effort scratch cleanup.

	o.printer.Progress("Building release locally...")

	version, err := o.builder.Build(ctx, o.sourceDir, buildDir)
	if err != nil {
		return nil, err
	}

	report.Version = version
	o.printer.Println("Build version: %s", version)

	if err := o.checkVCSVersion(ctx, version); err != nil {
		return nil, err
	}

	localSet := &entities.ArtifactSet{
		Project: o.cfg.ProjectName,
		Version: version,
		Dir:     buildDir,
	}

	for _, channel := range o.channels {
		report.Results = append(report.Results, o.verifyChannel(ctx, channel, localSet, report))
	}

	// The warning summary always prints, matched or not.
	for _, warning := range report.Warnings {
		o.printer.Warnln("%s", warning)
	}

	o.sign(ctx, localSet, report)

	return report, nil
}

// checkVCSVersion cross-checks the build version against version control.
// The build version must be a prefix of the VCS version: exact equality is
// not required because git describe appends commit-distance markers when the
// work tree sits past the tagged commit, but any other disagreement means the
// tree is not on the released commit.
func (o *VerifyOrchestrator) checkVCSVersion(ctx context.Context, buildVersion string) error {
	o.printer.Progress("Resolving versions...")

	gitVersion, err := o.vcs.Resolve(ctx)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(gitVersion, buildVersion) {
		return fmt.Errorf("%w: git %q, build %q",
			entities.ErrVersionMismatch, gitVersion, buildVersion)
	}

	return nil
}

// verifyChannel resolves one channel's latest pointer, fetches its artifact
// set and compares it against the local build. Failures never abort the run;
// they become the channel's failed result so one pass reports on all
// channels. A stale latest pointer is only a warning; "latest" may
// legitimately lag a build during release preparation.
func (o *VerifyOrchestrator) verifyChannel(ctx context.Context, channel gateways.Channel, localSet *entities.ArtifactSet, report *entities.RunReport) entities.VerificationResult {
	result := entities.VerificationResult{Channel: channel.Name()}

	o.printer.Progress("Resolving latest %s version...", channel.Name())

	latest, err := channel.ResolveLatest(ctx)
	if err != nil {
		result.Err = err
		o.printer.Errorln("failed to resolve latest %s version: %v", channel.Name(), err)

		return result
	}

	if latest != localSet.Version {
		report.AddWarning(fmt.Sprintf("%s latest version is %s, not %s",
			channel.Name(), latest, localSet.Version))
	}

	o.printer.Progress("Downloading release from %s...", channel.Name())

	destDir, err := os.MkdirTemp("", "verify-release-download-")
	if err != nil {
		result.Err = fmt.Errorf("create download directory: %w", err)
		o.printer.Errorln("%s: %v", channel.Name(), result.Err)

		return result
	}
	defer os.RemoveAll(destDir) //nolint:errcheck // Best effort scratch cleanup.

	remoteSet, err := channel.FetchArtifactSet(ctx, localSet.Version, destDir)
	if err != nil {
		result.Err = err
		o.printer.Errorln("failed to fetch %s release: %v", channel.Name(), err)

		return result
	}

	o.printer.Progress("Comparing %s release with local build...", channel.Name())

	matched, err := o.comparator.CompareArtifactSets(localSet, remoteSet)
	if err != nil {
		result.Err = err
		o.printer.Errorln("failed to compare %s release: %v", channel.Name(), err)

		return result
	}

	result.Matched = matched
	if matched {
		o.printer.Println("%s artifacts match the local build", channel.Name())
	} else {
		o.printer.Errorln("%s artifacts do not match the local build", channel.Name())
	}

	return result
}

// sign runs the optional signing phase. Signing is attempted only when every
// attempted channel matched; it is never run against unverified artifacts.
// A signing failure is reported but leaves the verification outcome alone.
func (o *VerifyOrchestrator) sign(ctx context.Context, localSet *entities.ArtifactSet, report *entities.RunReport) {
	if o.signer == nil {
		return
	}

	report.SigningRequested = true

	if !report.AllMatched() {
		report.SigningSkipped = true
		o.printer.Println("Signing skipped: verification did not pass")

		return
	}

	o.printer.Progress("Signing artifacts...")

	sigPaths, err := o.signer.SignArtifactSet(ctx, localSet, o.outputDir)
	if err != nil {
		report.SigningErr = err
		o.printer.Warnln("signing failed: %v", err)

		return
	}

	for _, path := range sigPaths {
		o.printer.Println("Signature written to %s", path)
	}
}
