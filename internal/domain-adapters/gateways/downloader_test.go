package gateways

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitasao/verify-release/internal/domain/entities"
)

func TestDownloaderFetchFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("artifact bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "artifact.tar.gz")
	d := NewDownloader(5 * time.Second)

	require.NoError(t, d.FetchFile(context.Background(), server.URL, dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("artifact bytes"), content)
}

func TestDownloaderFetchFileNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "artifact.tar.gz")
	d := NewDownloader(5 * time.Second)

	err := d.FetchFile(context.Background(), server.URL, dest)
	require.ErrorIs(t, err, entities.ErrFetchFailed)
}

func TestDownloaderFetchFileUnreachable(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "artifact.tar.gz")
	d := NewDownloader(time.Second)

	err := d.FetchFile(context.Background(), "http://127.0.0.1:1/nope", dest)
	require.ErrorIs(t, err, entities.ErrFetchFailed)
}
