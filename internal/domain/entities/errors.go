package entities

import "errors"

// Sentinel errors for the pipeline's failure classes. Adapters wrap them with
// fmt.Errorf and %w to add context; callers classify with errors.Is.
var (
	// ErrBuildFailed reports that the clean-room build did not produce
	// artifacts.
	ErrBuildFailed = errors.New("build failed")

	// ErrVersionNotFound reports that no recognizable artifact filename was
	// found to derive a version from.
	ErrVersionNotFound = errors.New("version not found")

	// ErrUnexpectedFormat reports version-control output that does not have
	// the required shape.
	ErrUnexpectedFormat = errors.New("unexpected version format")

	// ErrVersionMismatch reports that the build version is not a prefix of
	// the version derived from version control.
	ErrVersionMismatch = errors.New("build version is not a prefix of the git version")

	// ErrFetchFailed reports that a remote download or package-manager
	// invocation failed.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrSigningFailed reports that a detached signature could not be
	// produced or validated.
	ErrSigningFailed = errors.New("signing failed")
)
