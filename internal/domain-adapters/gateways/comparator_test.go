package gateways

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitasao/verify-release/internal/domain/entities"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestCompareFilesIdentical(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := bytes.Repeat([]byte("release bytes "), 10_000)
	a := writeFile(t, dir, "a.tar.gz", content)
	b := writeFile(t, dir, "b.tar.gz", content)

	c := NewComparator()

	same, err := c.CompareFiles(a, b)
	require.NoError(t, err)
	assert.True(t, same)

	// Reflexive.
	same, err = c.CompareFiles(a, a)
	require.NoError(t, err)
	assert.True(t, same)
}

func TestCompareFilesSingleByteFlip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := bytes.Repeat([]byte("release bytes "), 10_000)
	a := writeFile(t, dir, "a.tar.gz", content)

	flipped := bytes.Clone(content)
	flipped[len(flipped)/2] ^= 0x01
	b := writeFile(t, dir, "b.tar.gz", flipped)

	c := NewComparator()

	same, err := c.CompareFiles(a, b)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestCompareFilesDifferentSizes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a", []byte("short"))
	b := writeFile(t, dir, "b", []byte("slightly longer"))

	c := NewComparator()

	same, err := c.CompareFiles(a, b)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestCompareFilesMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a", []byte("x"))

	c := NewComparator()

	_, err := c.CompareFiles(a, filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestCompareArtifactSets(t *testing.T) {
	t.Parallel()

	localDir := t.TempDir()
	remoteDir := t.TempDir()

	writeFile(t, localDir, "tuf-1.2.3.tar.gz", []byte("sdist"))
	writeFile(t, localDir, "tuf-1.2.3-py3-none-any.whl", []byte("wheel"))
	writeFile(t, remoteDir, "tuf-1.2.3.tar.gz", []byte("sdist"))
	writeFile(t, remoteDir, "tuf-1.2.3-py3-none-any.whl", []byte("wheel"))

	local := &entities.ArtifactSet{Project: "tuf", Version: "1.2.3", Dir: localDir}
	remote := &entities.ArtifactSet{Project: "tuf", Version: "1.2.3", Dir: remoteDir}

	c := NewComparator()

	same, err := c.CompareArtifactSets(local, remote)
	require.NoError(t, err)
	assert.True(t, same)

	// A mismatch in either kind fails the whole pair.
	writeFile(t, remoteDir, "tuf-1.2.3-py3-none-any.whl", []byte("tampered"))

	same, err = c.CompareArtifactSets(local, remote)
	require.NoError(t, err)
	assert.False(t, same)
}
