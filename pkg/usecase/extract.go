package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// extractArchive expands zip data into a freshly created temporary
// directory and returns its path. The caller owns the directory and
// must remove it on every exit path.
func extractArchive(ctx context.Context, data []byte) (string, error) {
	logger := ctxlog.From(ctx)

	tempDir, err := os.MkdirTemp("", "pages-restore-*")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary directory")
	}

	if err := os.Chmod(tempDir, 0700); err != nil {
		_ = os.RemoveAll(tempDir)
		return "", goerr.Wrap(err, "failed to set directory permissions", goerr.V("temp_dir", tempDir))
	}

	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", goerr.Wrap(err, "failed to open artifact archive")
	}

	for _, file := range zipReader.File {
		if err := extractFile(file, tempDir); err != nil {
			_ = os.RemoveAll(tempDir)
			return "", goerr.Wrap(err, "failed to extract archive entry", goerr.V("entry", file.Name))
		}
	}

	logger.Debug("extracted artifact archive",
		"temp_dir", tempDir,
		"entry_count", len(zipReader.File),
	)

	return tempDir, nil
}

// extractFile writes a single zip entry under destDir.
func extractFile(file *zip.File, destDir string) error {
	// Reject entries that would escape the extraction directory.
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("archive entry escapes extraction directory", goerr.V("entry", file.Name))
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.FileInfo().Mode())
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open archive entry")
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories")
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file")
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy entry content")
	}

	return nil
}
