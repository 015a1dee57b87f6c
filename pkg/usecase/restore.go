package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aphelionz/pages-restore/pkg/domain/interfaces"
	"github.com/aphelionz/pages-restore/pkg/domain/model"
)

type restoreUseCase struct {
	client         interfaces.PagesClient
	mirror         interfaces.TreeMirror
	repo           model.RepoID
	target         string
	maxArchiveSize int64
}

// Option configures the restore pipeline.
type Option func(*restoreUseCase)

// WithMaxArchiveSize overrides the archive size cap. Intended for
// tests; production runs keep model.MaxArchiveSize.
func WithMaxArchiveSize(n int64) Option {
	return func(uc *restoreUseCase) {
		uc.maxArchiveSize = n
	}
}

// NewRestore verifies the capability set and builds the restore
// pipeline for one repository and target directory.
func NewRestore(caps Capabilities, repo model.RepoID, target string, opts ...Option) (interfaces.RestoreUseCase, error) {
	if repo.Owner == "" || repo.Name == "" {
		return nil, goerr.New("repository identity is not configured")
	}
	if err := caps.Verify(target); err != nil {
		return nil, goerr.Wrap(err, "capability check failed")
	}

	uc := &restoreUseCase{
		client:         caps.Client,
		mirror:         caps.Mirror,
		repo:           repo,
		target:         target,
		maxArchiveSize: model.MaxArchiveSize,
	}
	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

// Restore runs the pipeline: locate -> state gate -> resolve download
// -> fetch -> size gate -> extract -> validate -> mirror. The target
// directory is only written in the final mirror step, after every
// precondition has been verified.
func (uc *restoreUseCase) Restore(ctx context.Context) (*model.Outcome, error) {
	logger := ctxlog.From(ctx)

	meta, err := uc.client.LatestArtifact(ctx, uc.repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up latest pages artifact", goerr.V("repo", uc.repo.String()))
	}
	if meta == nil {
		logger.Info("no published pages artifact, leaving target as is",
			"repo", uc.repo.String(),
			"target", uc.target,
		)
		return model.Skipped(model.SkipNoArtifact, "no publication artifact found"), nil
	}

	// Only an active artifact is trustworthy: anything else may point
	// at content the platform has already discarded or superseded.
	if meta.State != model.StateActive {
		return nil, goerr.New("latest pages artifact is not active, refusing to restore",
			goerr.V("artifact_id", meta.ID),
			goerr.V("state", string(meta.State)),
		)
	}

	desc, err := uc.client.ResolveDownload(ctx, uc.repo, meta.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve artifact download", goerr.V("artifact_id", meta.ID))
	}
	if desc == nil || desc.URL == "" {
		logger.Info("artifact has no download location, leaving target as is",
			"artifact_id", meta.ID,
		)
		return model.Skipped(model.SkipNoDownload, "artifact has no usable download location"), nil
	}

	data, err := uc.client.Fetch(ctx, desc.URL, uc.maxArchiveSize)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download pages artifact", goerr.V("artifact_id", meta.ID))
	}
	if len(data) == 0 {
		return nil, goerr.New("downloaded artifact archive is empty", goerr.V("artifact_id", meta.ID))
	}
	if int64(len(data)) > uc.maxArchiveSize {
		return nil, goerr.New("downloaded artifact archive exceeds size cap",
			goerr.V("artifact_id", meta.ID),
			goerr.V("max_bytes", uc.maxArchiveSize),
		)
	}

	logger.Debug("downloaded artifact archive",
		"artifact_id", meta.ID,
		"size_bytes", len(data),
	)

	tempDir, err := extractArchive(ctx, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract pages artifact", goerr.V("artifact_id", meta.ID))
	}
	defer func() {
		_ = os.RemoveAll(tempDir)
	}()

	if missing := validateTree(tempDir); missing != nil {
		outcome := model.SkippedMissingFile(*missing)
		logger.Info("pages artifact is incomplete, leaving target as is",
			"artifact_id", meta.ID,
			"missing", missing.Path,
			"detail", outcome.Skip.Detail,
		)
		return outcome, nil
	}

	if err := uc.mirror.Mirror(ctx, tempDir, uc.target); err != nil {
		return nil, goerr.Wrap(err, "failed to mirror artifact into target",
			goerr.V("artifact_id", meta.ID),
			goerr.V("target", uc.target),
		)
	}

	logger.Info("restored pages artifact",
		"artifact_id", meta.ID,
		"target", uc.target,
	)

	return model.Applied(meta.ID), nil
}

// validateTree checks the required-file manifest against the extracted
// tree in manifest order, returning the first missing entry. An entry
// that exists as a directory counts as missing.
func validateTree(dir string) *model.RequiredFile {
	for _, req := range model.RequiredFiles() {
		fi, err := os.Stat(filepath.Join(dir, filepath.FromSlash(req.Path)))
		if err != nil || fi.IsDir() {
			r := req
			return &r
		}
	}
	return nil
}
