package mirror

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aphelionz/pages-restore/pkg/domain/interfaces"
)

type treeMirror struct{}

// New creates the directory mirrorer used as the pipeline's single
// mutating step.
func New() interfaces.TreeMirror {
	return &treeMirror{}
}

// Mirror makes dstDir's file set exactly equal to srcDir's. The target
// is created when absent (a cold start has no extras to delete).
func (m *treeMirror) Mirror(ctx context.Context, srcDir, dstDir string) error {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create target directory", goerr.V("target", dstDir))
	}

	if err := copyTree(ctx, srcDir, dstDir); err != nil {
		return err
	}

	return pruneExtras(ctx, srcDir, dstDir)
}

// copyTree copies every file and directory from src into dst,
// overwriting existing files.
func copyTree(ctx context.Context, srcDir, dstDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return goerr.Wrap(err, "failed to walk source tree", goerr.V("path", path))
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve relative path", goerr.V("path", path))
		}
		if rel == "." {
			return nil
		}

		dst := filepath.Join(dstDir, rel)
		if d.IsDir() {
			// A file occupying the directory's name must go first.
			if fi, err := os.Lstat(dst); err == nil && !fi.IsDir() {
				if err := os.Remove(dst); err != nil {
					return goerr.Wrap(err, "failed to replace file with directory", goerr.V("path", dst))
				}
			}
			if err := os.MkdirAll(dst, 0755); err != nil {
				return goerr.Wrap(err, "failed to create directory", goerr.V("path", dst))
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return goerr.Wrap(err, "failed to stat source file", goerr.V("path", path))
		}

		// A directory occupying the file's name must go first.
		if fi, err := os.Lstat(dst); err == nil && fi.IsDir() {
			if err := os.RemoveAll(dst); err != nil {
				return goerr.Wrap(err, "failed to replace directory with file", goerr.V("path", dst))
			}
		}

		return copyFile(path, dst, info.Mode())
	})
}

// pruneExtras deletes every entry present in dst but absent from src.
func pruneExtras(ctx context.Context, srcDir, dstDir string) error {
	return filepath.WalkDir(dstDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return goerr.Wrap(err, "failed to walk target tree", goerr.V("path", path))
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dstDir, path)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve relative path", goerr.V("path", path))
		}
		if rel == "." {
			return nil
		}

		if _, err := os.Lstat(filepath.Join(srcDir, rel)); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return goerr.Wrap(err, "failed to stat source counterpart", goerr.V("path", rel))
		}

		if d.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				return goerr.Wrap(err, "failed to remove stale directory", goerr.V("path", path))
			}
			return filepath.SkipDir
		}

		if err := os.Remove(path); err != nil {
			return goerr.Wrap(err, "failed to remove stale file", goerr.V("path", path))
		}
		return nil
	})
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return goerr.Wrap(err, "failed to open source file", goerr.V("path", src))
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return goerr.Wrap(err, "failed to create target file", goerr.V("path", dst))
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", dst))
	}

	if err := out.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize target file", goerr.V("path", dst))
	}
	return nil
}
