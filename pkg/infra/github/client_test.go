package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/aphelionz/pages-restore/pkg/domain/model"
	githubinfra "github.com/aphelionz/pages-restore/pkg/infra/github"
)

var testRepo = model.RepoID{Owner: "aphelionz", Name: "zcash-radio"}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := githubinfra.NewClient("", "")
	gt.Error(t, err)
}

func TestClient_LatestArtifact(t *testing.T) {
	t.Run("active artifact", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.String(t, r.URL.Path).Equal("/repos/aphelionz/zcash-radio/pages/artifacts/latest")
			gt.String(t, r.Header.Get("Authorization")).Contains("test-token")
			fmt.Fprint(w, `{"artifact":{"id":42,"state":"active"}}`)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		meta, err := client.LatestArtifact(context.Background(), testRepo)
		gt.NoError(t, err)
		gt.Value(t, meta).NotNil()
		gt.Number(t, meta.ID).Equal(int64(42))
		gt.Value(t, meta.State).Equal(model.StateActive)
	})

	t.Run("empty body means not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		meta, err := client.LatestArtifact(context.Background(), testRepo)
		gt.NoError(t, err)
		gt.Value(t, meta).Nil()
	})

	t.Run("404 means not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		meta, err := client.LatestArtifact(context.Background(), testRepo)
		gt.NoError(t, err)
		gt.Value(t, meta).Nil()
	})

	t.Run("metadata without id means not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"artifact":{"state":"active"}}`)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		meta, err := client.LatestArtifact(context.Background(), testRepo)
		gt.NoError(t, err)
		gt.Value(t, meta).Nil()
	})

	t.Run("server error is fatal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		_, err = client.LatestArtifact(context.Background(), testRepo)
		gt.Error(t, err)
	})

	t.Run("expired state is reported verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"artifact":{"id":7,"state":"expired"}}`)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		meta, err := client.LatestArtifact(context.Background(), testRepo)
		gt.NoError(t, err)
		gt.Value(t, meta).NotNil()
		gt.Number(t, meta.ID).Equal(int64(7))
		gt.Value(t, meta.State).Equal(model.StateExpired)
	})
}

func TestClient_ResolveDownload(t *testing.T) {
	t.Run("download url present", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.String(t, r.URL.Path).Equal("/repos/aphelionz/zcash-radio/pages/artifacts/42")
			fmt.Fprint(w, `{"download_url":"https://example.com/artifacts/42.zip"}`)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		desc, err := client.ResolveDownload(context.Background(), testRepo, 42)
		gt.NoError(t, err)
		gt.Value(t, desc).NotNil()
		gt.String(t, desc.URL).Equal("https://example.com/artifacts/42.zip")
	})

	t.Run("empty body means no download", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		desc, err := client.ResolveDownload(context.Background(), testRepo, 42)
		gt.NoError(t, err)
		gt.Value(t, desc).Nil()
	})

	t.Run("missing download url means no download", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id":42}`)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", server.URL)
		gt.NoError(t, err)

		desc, err := client.ResolveDownload(context.Background(), testRepo, 42)
		gt.NoError(t, err)
		gt.Value(t, desc).Nil()
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Run("downloads full payload", func(t *testing.T) {
		payload := []byte("artifact archive bytes")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.String(t, r.Header.Get("Authorization")).Contains("test-token")
			w.Write(payload)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", "")
		gt.NoError(t, err)

		data, err := client.Fetch(context.Background(), server.URL, int64(len(payload)))
		gt.NoError(t, err)
		gt.Value(t, data).Equal(payload)
	})

	t.Run("stops reading at maxBytes+1", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, 100))
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", "")
		gt.NoError(t, err)

		data, err := client.Fetch(context.Background(), server.URL, 10)
		gt.NoError(t, err)
		gt.Number(t, len(data)).Equal(11)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", "")
		gt.NoError(t, err)

		_, err = client.Fetch(context.Background(), server.URL, 10)
		gt.Error(t, err)
	})

	t.Run("diagnostics omit the signed query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client, err := githubinfra.NewClient("test-token", "")
		gt.NoError(t, err)

		signedURL := server.URL + "/download/42.zip?token=topsecret-signature"
		_, err = client.Fetch(context.Background(), signedURL, 10)
		gt.Error(t, err)

		values := goerr.Values(err)
		url, ok := values["url"].(string)
		gt.Value(t, ok).Equal(true)
		gt.String(t, url).Equal(server.URL + "/download/42.zip")
		gt.Value(t, strings.Contains(err.Error(), "topsecret-signature")).Equal(false)
	})

	t.Run("transport failures omit the signed query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client, err := githubinfra.NewClient("test-token", "")
		gt.NoError(t, err)

		signedURL := server.URL + "/download/42.zip?token=topsecret-signature"
		server.Close()

		_, err = client.Fetch(context.Background(), signedURL, 10)
		gt.Error(t, err)
		gt.Value(t, strings.Contains(err.Error(), "topsecret-signature")).Equal(false)
	})
}
