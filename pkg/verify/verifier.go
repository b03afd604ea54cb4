// Package verify validates downloaded release archives against a checksum
// source of truth: a fetched manifest, an inline operator override, or a
// hard-coded fallback digest. It fails closed: an artifact with no usable
// digest source is never reported as verified.
package verify

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/obstack/obstack/internal/logger"
	"github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/model"
)

// Verifier resolves an expected digest for an artifact and checks it.
type Verifier struct{}

// NewVerifier creates a new Verifier instance.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify computes the artifact's SHA-256 and compares it against the first
// available source of truth, in trust order: manifest line for the exact
// archive filename, inline override digest, fallback digest hard-coded for
// this exact version. With no source available it returns
// ErrVerificationUnavailable; on mismatch it returns ErrChecksumMismatch
// carrying both digests. The artifact's Verification field is updated in
// place either way.
func (v *Verifier) Verify(desc model.PackageDescriptor, art *model.DownloadedArtifact, inlineDigest string) (model.Verification, error) {
	actual, err := sha256File(art.ArchivePath)
	if err != nil {
		return model.Verification{}, errors.Wrap(err, "hashing artifact")
	}

	expected, source, err := v.resolveExpected(desc, art, inlineDigest)
	if err != nil {
		return model.Verification{}, err
	}

	result := model.Verification{
		Source:   source,
		Expected: expected,
		Actual:   actual,
	}

	if actual != expected {
		result.State = model.VerificationMismatched
		art.Verification = result
		return result, errors.Wrapf(errors.ErrChecksumMismatch,
			"%s: expected %s (%s), got %s", filepath.Base(art.ArchivePath), expected, source, actual)
	}

	result.State = model.VerificationVerified
	art.Verification = result

	if source == model.SourceFallback {
		logger.Warn("artifact verified against hard-coded fallback digest; no signed manifest was available", logger.Fields{
			"package": art.Package,
			"version": art.Version,
		})
	}
	return result, nil
}

func (v *Verifier) resolveExpected(desc model.PackageDescriptor, art *model.DownloadedArtifact, inlineDigest string) (string, model.VerificationSource, error) {
	if art.ManifestPath != "" {
		digest, err := manifestDigest(art.ManifestPath, filepath.Base(art.ArchivePath))
		if err != nil {
			return "", "", err
		}
		if digest != "" {
			return digest, model.SourceManifest, nil
		}
		logger.Warn("checksum manifest has no entry for archive", logger.Fields{
			"package": art.Package,
			"archive": filepath.Base(art.ArchivePath),
		})
	}

	if inlineDigest != "" {
		return normalizeHex(inlineDigest), model.SourceInline, nil
	}

	if digest, ok := desc.FallbackSHA256[art.Version]; ok {
		return normalizeHex(digest), model.SourceFallback, nil
	}

	return "", "", errors.Wrapf(errors.ErrVerificationUnavailable,
		"%s %s: no manifest entry, inline digest or fallback digest", art.Package, art.Version)
}

// manifestDigest scans a "digest  filename" manifest for the exact archive
// name and returns its digest, or "" when the manifest has no matching line.
func manifestDigest(manifestPath, archiveName string) (string, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return "", errors.Wrap(err, "open checksum manifest")
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		if filepath.Base(fields[1]) == archiveName {
			return normalizeHex(fields[0]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "read checksum manifest")
	}
	return "", nil
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
