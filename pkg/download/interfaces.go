//go:generate mockgen -destination=./mocks/download.go -package=mocks . Manager

package download

import (
	"context"

	"github.com/obstack/obstack/pkg/model"
)

// Manager defines the interface for fetching vendor release artifacts.
// It replaces ad-hoc HTTP downloading with a higher-level, testable API.
type Manager interface {
	// FetchRelease downloads the release archive for the descriptor at the
	// given version into dir (which must be absolute, typically a scoped
	// temporary directory), along with the checksum manifest when the
	// vendor publishes one. A failed archive download is fatal; a failed
	// manifest download is not and yields an artifact without ManifestPath.
	FetchRelease(ctx context.Context, desc model.PackageDescriptor, version, dir string) (*model.DownloadedArtifact, error)
}
