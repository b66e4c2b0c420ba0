package gateways

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/harshitasao/verify-release/internal/domain/entities"
)

// compareChunkSize is the read size for byte comparison.
const compareChunkSize = 64 * 1024

// Comparator performs byte-exact file comparison between local and remote
// artifact sets.
type Comparator struct{}

// NewComparator creates a comparator.
func NewComparator() *Comparator {
	return &Comparator{}
}

// CompareArtifactSets reports whether both artifact kinds in the two sets are
// byte-for-byte identical. A mismatch in either kind fails the whole pair.
func (c *Comparator) CompareArtifactSets(local, remote *entities.ArtifactSet) (bool, error) {
	for _, kind := range entities.Kinds() {
		same, err := c.CompareFiles(local.Path(kind), remote.Path(kind))
		if err != nil {
			return false, fmt.Errorf("compare %s: %w", kind, err)
		}

		if !same {
			return false, nil
		}
	}

	return true, nil
}

// CompareFiles performs a full-content comparison of two files. Size is only
// a shortcut for the negative case; matching sizes still read every byte.
func (c *Comparator) CompareFiles(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", a, err)
	}

	infoB, err := os.Stat(b)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", b, err)
	}

	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	//nolint:gosec // G304: Paths are produced by the pipeline's own stages.
	fileA, err := os.Open(a)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", a, err)
	}
	//nolint:errcheck // Defer close on read-only file.
	defer fileA.Close()

	//nolint:gosec // G304: Paths are produced by the pipeline's own stages.
	fileB, err := os.Open(b)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", b, err)
	}
	//nolint:errcheck // Defer close on read-only file.
	defer fileB.Close()

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)

	for {
		nA, errA := io.ReadFull(fileA, bufA)
		nB, errB := io.ReadFull(fileB, bufB)

		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		endA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		endB := errB == io.EOF || errB == io.ErrUnexpectedEOF

		switch {
		case endA && endB:
			return true, nil
		case errA != nil && !endA:
			return false, fmt.Errorf("read %s: %w", a, errA)
		case errB != nil && !endB:
			return false, fmt.Errorf("read %s: %w", b, errB)
		case endA != endB:
			return false, nil
		}
	}
}
