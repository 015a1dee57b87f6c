package model

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RepoID identifies the repository whose pages artifact is restored.
type RepoID struct {
	Owner string // Repository owner
	Name  string // Repository name
}

// ParseRepoID parses a single "owner/name" configuration value.
func ParseRepoID(s string) (RepoID, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoID{}, goerr.New("repository must be in owner/name form", goerr.V("repo", s))
	}

	return RepoID{Owner: owner, Name: name}, nil
}

func (r RepoID) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// ArtifactState is the publication lifecycle state reported by the
// hosting platform. Only StateActive artifacts may be restored.
type ArtifactState string

const (
	StateActive  ArtifactState = "active"
	StateExpired ArtifactState = "expired"
	StateUnknown ArtifactState = "unknown"
)

// ParseArtifactState normalizes the state string from the API. An
// absent state maps to StateUnknown; unrecognized values are kept
// verbatim so diagnostics can report what the platform actually said.
func ParseArtifactState(s string) ArtifactState {
	switch s {
	case "active":
		return StateActive
	case "expired":
		return StateExpired
	case "":
		return StateUnknown
	default:
		return ArtifactState(s)
	}
}

// ArtifactMetadata describes the most recent publication artifact.
type ArtifactMetadata struct {
	ID    int64
	State ArtifactState
}

// DownloadDescriptor points at the artifact's archive. An empty URL
// means the platform has no usable download for the artifact.
type DownloadDescriptor struct {
	URL string
}
