package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/aphelionz/pages-restore/pkg/domain/interfaces"
	"github.com/aphelionz/pages-restore/pkg/domain/model"
)

type client struct {
	gh         *github.Client
	httpClient *http.Client
}

// NewClient creates an authenticated hosting API client. apiURL
// overrides the API base URL when non-empty (tests point it at a
// local server); the default is the public GitHub API.
func NewClient(token, apiURL string) (interfaces.PagesClient, error) {
	if token == "" {
		return nil, goerr.New("access token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	gh := github.NewClient(httpClient)

	if apiURL != "" {
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid API base URL", goerr.V("url", apiURL))
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}

	return &client{
		gh:         gh,
		httpClient: httpClient,
	}, nil
}

// LatestArtifact queries metadata for the most recent pages artifact.
// An empty body, a 404, or metadata without an id all mean no artifact
// has ever been published, reported as (nil, nil).
func (c *client) LatestArtifact(ctx context.Context, repo model.RepoID) (*model.ArtifactMetadata, error) {
	u := fmt.Sprintf("repos/%s/%s/pages/artifacts/latest", repo.Owner, repo.Name)
	req, err := c.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build latest artifact request", goerr.V("repo", repo.String()))
	}

	var body struct {
		Artifact struct {
			ID    int64  `json:"id"`
			State string `json:"state"`
		} `json:"artifact"`
	}
	if _, err := c.gh.Do(ctx, req, &body); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to query latest pages artifact", goerr.V("repo", repo.String()))
	}

	if body.Artifact.ID == 0 {
		return nil, nil
	}

	return &model.ArtifactMetadata{
		ID:    body.Artifact.ID,
		State: model.ParseArtifactState(body.Artifact.State),
	}, nil
}

// ResolveDownload looks up the download location for an artifact id.
// An empty body, a 404, or a missing download_url are reported as
// (nil, nil): the artifact was already confirmed to exist, so the gap
// is treated as transient by the caller.
func (c *client) ResolveDownload(ctx context.Context, repo model.RepoID, artifactID int64) (*model.DownloadDescriptor, error) {
	u := fmt.Sprintf("repos/%s/%s/pages/artifacts/%d", repo.Owner, repo.Name, artifactID)
	req, err := c.gh.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build artifact request", goerr.V("artifact_id", artifactID))
	}

	var body struct {
		DownloadURL string `json:"download_url"`
	}
	if _, err := c.gh.Do(ctx, req, &body); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to query pages artifact", goerr.V("repo", repo.String()), goerr.V("artifact_id", artifactID))
	}

	if body.DownloadURL == "" {
		return nil, nil
	}

	return &model.DownloadDescriptor{URL: body.DownloadURL}, nil
}

// Fetch downloads the archive bytes. Reading stops after maxBytes+1
// bytes; callers detect an oversized payload by len(data) > maxBytes.
func (c *client) Fetch(ctx context.Context, rawURL string, maxBytes int64) ([]byte, error) {
	// Download URLs may be token-signed; diagnostics must not carry
	// the query string.
	loggedURL := stripQuery(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", loggedURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full request URL; unwrap it so the
		// signed query never reaches the log either.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, goerr.Wrap(err, "failed to download artifact archive", goerr.V("url", loggedURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status while downloading artifact archive",
			goerr.V("status", resp.StatusCode), goerr.V("url", loggedURL))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read artifact archive", goerr.V("url", loggedURL))
	}

	return data, nil
}

func stripQuery(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}
