package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/harshitasao/verify-release/internal/config"
	"github.com/harshitasao/verify-release/internal/domain/entities"
	"github.com/harshitasao/verify-release/internal/logger"
)

// Default GitHub endpoints. Overridable for tests.
const (
	defaultGitHubAPIBaseURL      = "https://api.github.com"
	defaultGitHubDownloadBaseURL = "https://github.com"
)

// GitHubChannel retrieves released artifacts from GitHub Releases via direct
// download URLs and resolves the latest version through the releases API.
type GitHubChannel struct {
	cfg             *config.Config
	downloader      *Downloader
	httpClient      *http.Client
	apiBaseURL      string
	downloadBaseURL string
}

// NewGitHubChannel creates the artifact-host channel.
func NewGitHubChannel(cfg *config.Config, downloader *Downloader) *GitHubChannel {
	return &GitHubChannel{
		cfg:             cfg,
		downloader:      downloader,
		httpClient:      &http.Client{Timeout: cfg.FetchTimeout},
		apiBaseURL:      defaultGitHubAPIBaseURL,
		downloadBaseURL: defaultGitHubDownloadBaseURL,
	}
}

// Name identifies the channel in results and messages.
func (g *GitHubChannel) Name() string {
	return "GitHub"
}

// githubRelease is the subset of the GitHub API release object we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// ResolveLatest queries the latest-release pointer and returns its version in
// canonical form.
func (g *GitHubChannel) ResolveLatest(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", g.apiBaseURL, g.cfg.GitHubRepo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	// A token raises the rate limit but is never required.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: GitHub API: %w", entities.ErrFetchFailed, err)
	}
	//nolint:errcheck // Defer close on HTTP response body.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: GitHub API: HTTP %d: %s",
			entities.ErrFetchFailed, resp.StatusCode, body)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}

	return entities.NormalizeVersion(release.TagName), nil
}

// FetchArtifactSet downloads both artifact kinds for the target version into
// destDir using the fixed naming convention and the tag-prefixed path.
func (g *GitHubChannel) FetchArtifactSet(ctx context.Context, version, destDir string) (*entities.ArtifactSet, error) {
	set := &entities.ArtifactSet{
		Project: g.cfg.ProjectName,
		Version: version,
		Dir:     destDir,
	}

	for _, filename := range set.Filenames() {
		url := fmt.Sprintf("%s/%s/releases/download/v%s/%s",
			g.downloadBaseURL, g.cfg.GitHubRepo, version, filename)

		start := time.Now()
		if err := g.downloader.FetchFile(ctx, url, filepath.Join(destDir, filename)); err != nil {
			return nil, err
		}

		logger.Debugf(ctx, "fetched %s from GitHub in %v", filename, time.Since(start))
	}

	return set, nil
}
