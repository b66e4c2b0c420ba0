// Package gpg produces and validates detached armored signatures by driving
// the gpg tool and double-checking its output.
package gpg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/harshitasao/verify-release/internal/domain/entities"
	"github.com/harshitasao/verify-release/internal/domain/interfaces/gateways"
	"github.com/harshitasao/verify-release/internal/logger"
)

// SignatureSuffix is appended to an artifact filename to form its detached
// signature filename.
const SignatureSuffix = ".asc"

// Signer produces detached armored signatures over verified artifacts.
type Signer struct {
	runner gateways.CommandRunner
	keyID  string
}

// NewSigner creates a signer. An empty keyID uses the default signing
// identity of the tool's keyring.
func NewSigner(runner gateways.CommandRunner, keyID string) *Signer {
	return &Signer{runner: runner, keyID: keyID}
}

// SignArtifactSet signs both artifacts in the set, writing signatures into
// outputDir as "{artifact-filename}.asc". It returns the signature paths.
//
// gpg can exit zero while writing nothing (or garbage) under agent or
// pinentry misconfiguration, so after each invocation the signature file must
// exist and parse as an armored PGP signature packet; otherwise the whole
// phase fails with ErrSigningFailed.
func (s *Signer) SignArtifactSet(ctx context.Context, set *entities.ArtifactSet, outputDir string) ([]string, error) {
	var sigPaths []string

	for _, kind := range entities.Kinds() {
		artifact := set.Path(kind)
		sigPath := filepath.Join(outputDir, entities.Filename(set.Project, set.Version, kind)+SignatureSuffix)

		args := []string{"--detach-sign", "--armor"}
		if s.keyID != "" {
			args = append(args, "--local-user", s.keyID)
		}
		args = append(args, "--output", sigPath, artifact)

		result := s.runner.Run(ctx, gateways.CommandSpec{
			Name: "gpg",
			Args: args,
		})
		if !result.Success {
			return nil, fmt.Errorf("%w: gpg exited %d: %s",
				entities.ErrSigningFailed, result.ExitCode, result.Stderr)
		}

		if err := validateDetachedSignature(sigPath); err != nil {
			return nil, err
		}

		logger.Infof(ctx, "signed %s", artifact)
		sigPaths = append(sigPaths, sigPath)
	}

	return sigPaths, nil
}

// validateDetachedSignature confirms the signature file exists and is a
// well-formed armored PGP signature.
func validateDetachedSignature(sigPath string) error {
	//nolint:gosec // G304: sigPath is computed from the artifact set.
	f, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("%w: signature file %s was not written", entities.ErrSigningFailed, sigPath)
	}
	//nolint:errcheck // Defer close on read-only file.
	defer f.Close()

	block, err := armor.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: %s is not armored: %w", entities.ErrSigningFailed, sigPath, err)
	}

	if block.Type != openpgp.SignatureType {
		return fmt.Errorf("%w: %s contains %q, not a signature",
			entities.ErrSigningFailed, sigPath, block.Type)
	}

	pkt, err := packet.Read(block.Body)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %w", entities.ErrSigningFailed, sigPath, err)
	}

	if _, ok := pkt.(*packet.Signature); !ok {
		return fmt.Errorf("%w: %s does not contain a signature packet",
			entities.ErrSigningFailed, sigPath)
	}

	return nil
}
