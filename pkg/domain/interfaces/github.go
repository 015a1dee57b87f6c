package interfaces

import (
	"context"

	"github.com/aphelionz/pages-restore/pkg/domain/model"
)

// PagesClient defines the read-only hosting API surface the restore
// pipeline consumes.
type PagesClient interface {
	// LatestArtifact returns metadata for the most recent publication
	// artifact of the repository. A nil result with nil error means no
	// artifact was found (empty body, 404, or metadata without an id).
	LatestArtifact(ctx context.Context, repo model.RepoID) (*model.ArtifactMetadata, error)

	// ResolveDownload looks up the download location for a specific
	// artifact id. A nil result with nil error means the platform
	// returned no usable body or no download location.
	ResolveDownload(ctx context.Context, repo model.RepoID, artifactID int64) (*model.DownloadDescriptor, error)

	// Fetch downloads the archive behind url with the run's credential.
	// At most maxBytes+1 bytes are read so the caller can detect an
	// oversized payload without buffering it whole.
	Fetch(ctx context.Context, url string, maxBytes int64) ([]byte, error)
}
