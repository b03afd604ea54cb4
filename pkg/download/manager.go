// Package download fetches vendor release archives and checksum manifests
// over HTTP into scoped temporary directories.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/obstack/obstack/internal/logger"
	pkgerrors "github.com/obstack/obstack/pkg/errors"
	"github.com/obstack/obstack/pkg/fsutil"
	"github.com/obstack/obstack/pkg/model"
)

// ManagerImpl is a simple HTTP-based download manager. Archives are written
// through a temp file and renamed into place, so no partially-downloaded
// file is ever observable under its final name.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "obstack/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchRelease implements Manager.
func (m *ManagerImpl) FetchRelease(ctx context.Context, desc model.PackageDescriptor, version, dir string) (*model.DownloadedArtifact, error) {
	if dir == "" || !filepath.IsAbs(dir) {
		return nil, fmt.Errorf("download dir must be absolute: %w: %s", pkgerrors.ErrInvalidPath, dir)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return nil, pkgerrors.Wrap(err, "could not create download dir")
	}

	archivePath, err := m.fetchOne(ctx, desc.DownloadURL(version), filepath.Join(dir, desc.ArchiveName(version)))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "fetching %s %s", desc.Name, version)
	}

	art := &model.DownloadedArtifact{
		Package:     desc.Name,
		Version:     version,
		ArchivePath: archivePath,
		Verification: model.Verification{
			State: model.VerificationUnverified,
		},
	}

	// The manifest is best effort: its absence is reported to the verifier
	// as "manifest unavailable", not treated as a download failure.
	if manifestURL := desc.ManifestURL(version); manifestURL != "" {
		manifestPath, err := m.fetchOne(ctx, manifestURL, filepath.Join(dir, desc.ManifestName))
		if err != nil {
			logger.Warn("checksum manifest unavailable", logger.Fields{
				"package": desc.Name,
				"url":     manifestURL,
				"error":   err.Error(),
			})
		} else {
			art.ManifestPath = manifestPath
		}
	}

	return art, nil
}

func (m *ManagerImpl) fetchOne(ctx context.Context, rawURL, absPath string) (string, error) {
	resp, err := m.doRequest(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, err := writeBodyToTemp(resp, absPath)
	if err != nil {
		return "", err
	}
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not finalize file")
	}
	return absPath, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrNetworkFailure, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrNetworkFailure)
	}
	return resp, nil
}

func writeBodyToTemp(resp *http.Response, absPath string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(pkgerrors.ErrNetworkFailure, err.Error())
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}
