package interfaces

import "context"

// TreeMirror makes a target directory's file set exactly equal to a
// source tree's: every source file is copied over, and files present
// only in the target are deleted.
type TreeMirror interface {
	Mirror(ctx context.Context, srcDir, dstDir string) error
}
