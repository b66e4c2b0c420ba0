package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/harshitasao/verify-release/internal/domain/entities"
	"github.com/harshitasao/verify-release/internal/logger"
)

// Downloader streams files from URLs into local scratch storage.
type Downloader struct {
	httpClient *http.Client
	userAgent  string
}

// NewDownloader creates a downloader. The timeout bounds every request so a
// stalled remote cannot hang the run.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "verify-release/1.0",
	}
}

// FetchFile downloads url to dest. A non-success status is ErrFetchFailed;
// there are no retries, a failed fetch means the release needs a human look
// before anyone trusts it.
func (d *Downloader) FetchFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrFetchFailed, url, err)
	}
	//nolint:errcheck // Defer close on HTTP response body.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: HTTP %d", entities.ErrFetchFailed, url, resp.StatusCode)
	}

	//nolint:gosec // G304: dest is a scratch path computed by the caller.
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	//nolint:errcheck // Defer close on file being written.
	defer out.Close()

	// Incremental copy keeps memory bounded for large archives.
	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", entities.ErrFetchFailed, url, err)
	}

	logger.Debugf(ctx, "downloaded %s (%d bytes)", filepath.Base(dest), written)

	return nil
}
