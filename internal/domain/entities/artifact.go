// Package entities defines core domain models and data structures.
package entities

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactKind identifies one of the two release file kinds that are ever
// compared. Directory scans ignore every other filename.
type ArtifactKind string

// Release artifact kinds.
const (
	KindSourceDist   ArtifactKind = "sdist"
	KindBuiltPackage ArtifactKind = "wheel"
)

// Kinds lists the artifact kinds in the order they are fetched, compared and
// signed.
func Kinds() []ArtifactKind {
	return []ArtifactKind{KindSourceDist, KindBuiltPackage}
}

const (
	sourceDistSuffix   = ".tar.gz"
	builtPackageSuffix = "-py3-none-any.whl"
)

// Filename returns the canonical release filename for a project, version and
// kind. The conventions are:
//
//	sdist: {project}-{version}.tar.gz
//	wheel: {project}-{version}-py3-none-any.whl
func Filename(project, version string, kind ArtifactKind) string {
	switch kind {
	case KindBuiltPackage:
		return fmt.Sprintf("%s-%s%s", project, version, builtPackageSuffix)
	default:
		return fmt.Sprintf("%s-%s%s", project, version, sourceDistSuffix)
	}
}

// ParseSourceDistVersion extracts the version from a source-distribution
// filename. The filename must be exactly "{project}-{version}.tar.gz" with a
// non-empty version, otherwise ErrVersionNotFound is returned. This is the
// single place in the codebase that reverses the sdist naming convention.
func ParseSourceDistVersion(filename, project string) (string, error) {
	base := filepath.Base(filename)
	prefix := project + "-"

	if !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, sourceDistSuffix) {
		return "", fmt.Errorf("%w: %q does not match %s-{version}%s",
			ErrVersionNotFound, base, project, sourceDistSuffix)
	}

	version := strings.TrimSuffix(strings.TrimPrefix(base, prefix), sourceDistSuffix)
	if version == "" {
		return "", fmt.Errorf("%w: empty version in %q", ErrVersionNotFound, base)
	}

	return version, nil
}

// ParseDownloadVersion extracts the version from any file a package manager
// may have produced for the project: either a source distribution or a built
// package with arbitrary compatibility tags ("{project}-{version}-{tags}.whl").
func ParseDownloadVersion(filename, project string) (string, error) {
	base := filepath.Base(filename)
	prefix := project + "-"

	if !strings.HasPrefix(base, prefix) {
		return "", fmt.Errorf("%w: %q does not start with %q", ErrVersionNotFound, base, prefix)
	}

	rest := strings.TrimPrefix(base, prefix)
	if strings.HasSuffix(rest, sourceDistSuffix) {
		return ParseSourceDistVersion(base, project)
	}

	// Built package: the version runs up to the first tag separator.
	version, _, found := strings.Cut(rest, "-")
	if !found || version == "" {
		return "", fmt.Errorf("%w: cannot split version from %q", ErrVersionNotFound, base)
	}

	return version, nil
}

// NormalizeVersion reduces a tag or version string from any source to the
// canonical comparable form by stripping the tag marker. Comparisons are done
// as exact string equality, never semantic ordering.
func NormalizeVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}

// ArtifactSet is the pair {source distribution, built package} for one
// version, rooted in a single directory.
type ArtifactSet struct {
	Project string
	Version string
	Dir     string
}

// Path returns the path of the artifact of the given kind.
func (s *ArtifactSet) Path(kind ArtifactKind) string {
	return filepath.Join(s.Dir, Filename(s.Project, s.Version, kind))
}

// Filenames returns the canonical filenames of both artifacts in the set.
func (s *ArtifactSet) Filenames() []string {
	names := make([]string, 0, len(Kinds()))
	for _, kind := range Kinds() {
		names = append(names, Filename(s.Project, s.Version, kind))
	}

	return names
}
