// Package cmd wires the verify-release command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harshitasao/verify-release/internal/config"
	gateways "github.com/harshitasao/verify-release/internal/domain-adapters/gateways"
	orchestrators "github.com/harshitasao/verify-release/internal/domain-orchestrators"
	ifgateways "github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
	"github.com/harshitasao/verify-release/internal/external-adapters/gpg"
	"github.com/harshitasao/verify-release/internal/logger"
	"github.com/harshitasao/verify-release/internal/ui"
)

// defaultSignValue marks --sign given without a key id.
const defaultSignValue = "default"

// errVerificationFailed maps a failed run to a non-zero exit status.
var errVerificationFailed = errors.New("verification failed")

var (
	configPath string
	skipPyPI   bool
	signKey    string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "verify-release [source-dir]",
		Short: "Verify published release artifacts against a clean-room local build",
		Long: `verify-release builds the release from committed source, downloads the
published artifacts from GitHub Releases and PyPI, and checks that every
file is byte-identical to the local build. Optionally it signs the
verified artifacts with detached armored signatures.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

// Execute runs the CLI and exits non-zero on verification failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errVerificationFailed) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}

		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().BoolVar(&skipPyPI, "skip-pypi", false, "omit the PyPI channel entirely")
	rootCmd.Flags().StringVar(&signKey, "sign", "",
		"sign verified artifacts, optionally with a specific key id")
	rootCmd.Flags().Lookup("sign").NoOptDefVal = defaultSignValue
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn",
		"diagnostic log level (debug, info, warn, error)")
}

func run(cmd *cobra.Command, args []string) error {
	// Unwind cleanly on Ctrl-C so scratch directories get removed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if level, ok := logger.ParseLogLevel(logLevel); ok {
		logger.SetLevel(level)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sourceDir := "."
	if len(args) > 0 {
		sourceDir = args[0]
	}

	runner := gateways.NewExecRunner(cfg.BuildTimeout)
	downloader := gateways.NewDownloader(cfg.FetchTimeout)

	channels := []ifgateways.Channel{gateways.NewGitHubChannel(cfg, downloader)}
	if !skipPyPI {
		channels = append(channels, gateways.NewPyPIChannel(runner, cfg))
	}

	var signer orchestrators.Signer
	if cmd.Flags().Changed("sign") {
		keyID := signKey
		if keyID == defaultSignValue {
			keyID = ""
		}

		signer = gpg.NewSigner(runner, keyID)
	}

	orchestrator := orchestrators.NewVerifyOrchestrator(
		cfg,
		gateways.NewBuilder(runner, cfg),
		gateways.NewGitVersionResolver(runner, sourceDir),
		channels,
		gateways.NewComparator(),
		signer,
		ui.NewPrinter(os.Stdout),
		sourceDir,
		".",
	)

	report, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	if report.ExitCode() != 0 {
		return errVerificationFailed
	}

	return nil
}
