// Package config holds the settings for a verification run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes the project under verification and the knobs of the
// pipeline. Everything that used to be ambient process state (notably the
// build-backend constraints) is an explicit value here.
type Config struct {
	// ProjectName is the package name artifacts are published under.
	ProjectName string `yaml:"project_name"`
	// GitHubRepo is the "owner/repo" slug of the artifact host.
	GitHubRepo string `yaml:"github_repo"`
	// PyPIProject is the distribution name on the package index.
	// Usually equal to ProjectName.
	PyPIProject string `yaml:"pypi_project"`
	// BuildConstraints is a path, relative to the source tree, of the
	// requirements file pinning the build backend. Passed to the build
	// subprocess as PIP_CONSTRAINT.
	BuildConstraints string `yaml:"build_constraints"`
	// BuildTimeout bounds the build subprocess.
	BuildTimeout time.Duration `yaml:"build_timeout"`
	// FetchTimeout bounds each artifact-host network call.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

const (
	// DefaultConfigFilename is the config file looked up next to the
	// source tree when --config is not given.
	DefaultConfigFilename = "verify-release.yaml"

	// DefaultBuildTimeout is the default bound on the build subprocess.
	DefaultBuildTimeout = 15 * time.Minute

	// DefaultFetchTimeout is the fixed per-request bound on downloads,
	// so a stalled remote cannot hang the run indefinitely.
	DefaultFetchTimeout = 5 * time.Second
)

// errRepoSlugInvalid is returned when the GitHub repository is not "owner/repo".
var errRepoSlugInvalid = errors.New("github_repo must be in owner/repo form")

// Default returns the configuration for the project this tool grew up
// verifying. A config file overrides any subset of it; derived and zero
// fields are filled in by Validate.
func Default() *Config {
	return &Config{
		ProjectName:      "tuf",
		GitHubRepo:       "theupdateframework/python-tuf",
		BuildConstraints: filepath.Join("requirements", "build.txt"),
	}
}

// Load reads configuration from path, falling back to defaults for unset
// fields. A missing file at the default location is not an error; a missing
// file at an explicitly requested location is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			if err := Validate(cfg); err != nil {
				return nil, err
			}

			return cfg, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and fills in defaults for zero values.
func Validate(cfg *Config) error {
	if cfg.ProjectName == "" {
		return errors.New("project_name must be provided")
	}

	if strings.Count(cfg.GitHubRepo, "/") != 1 {
		return fmt.Errorf("%w: %q", errRepoSlugInvalid, cfg.GitHubRepo)
	}

	if cfg.PyPIProject == "" {
		cfg.PyPIProject = cfg.ProjectName
	}

	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = DefaultBuildTimeout
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}

	return nil
}
