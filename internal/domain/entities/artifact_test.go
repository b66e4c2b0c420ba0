package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tuf-1.2.3.tar.gz", Filename("tuf", "1.2.3", KindSourceDist))
	assert.Equal(t, "tuf-1.2.3-py3-none-any.whl", Filename("tuf", "1.2.3", KindBuiltPackage))
}

func TestParseSourceDistVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "plain version", filename: "tuf-1.2.3.tar.gz", want: "1.2.3"},
		{name: "dev snapshot", filename: "tuf-1.2.3.dev1+g1234abc.tar.gz", want: "1.2.3.dev1+g1234abc"},
		{name: "path is stripped", filename: "dist/tuf-2.0.0.tar.gz", want: "2.0.0"},
		{name: "wrong project", filename: "other-1.2.3.tar.gz", wantErr: true},
		{name: "wheel, not sdist", filename: "tuf-1.2.3-py3-none-any.whl", wantErr: true},
		{name: "empty version", filename: "tuf-.tar.gz", wantErr: true},
		{name: "no suffix", filename: "tuf-1.2.3.zip", wantErr: true},
		{name: "garbage", filename: "README.md", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSourceDistVersion(tt.filename, "tuf")
			if tt.wantErr {
				require.ErrorIs(t, err, ErrVersionNotFound)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDownloadVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "wheel", filename: "tuf-1.2.3-py3-none-any.whl", want: "1.2.3"},
		{name: "sdist", filename: "tuf-1.2.3.tar.gz", want: "1.2.3"},
		{name: "wheel with long tags", filename: "tuf-0.9-cp311-cp311-manylinux1.whl", want: "0.9"},
		{name: "wrong project", filename: "requests-2.0.0.tar.gz", wantErr: true},
		{name: "no version separator", filename: "tuf-1.2.3.whl", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDownloadVersion(tt.filename, "tuf")
			if tt.wantErr {
				require.ErrorIs(t, err, ErrVersionNotFound)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.2.3", NormalizeVersion("v1.2.3"))
	assert.Equal(t, "1.2.3", NormalizeVersion("1.2.3"))
}

func TestArtifactSetPaths(t *testing.T) {
	t.Parallel()

	set := &ArtifactSet{Project: "tuf", Version: "1.2.3", Dir: "/tmp/build"}

	assert.Equal(t, "/tmp/build/tuf-1.2.3.tar.gz", set.Path(KindSourceDist))
	assert.Equal(t, "/tmp/build/tuf-1.2.3-py3-none-any.whl", set.Path(KindBuiltPackage))
	assert.Equal(t, []string{"tuf-1.2.3.tar.gz", "tuf-1.2.3-py3-none-any.whl"}, set.Filenames())
}
