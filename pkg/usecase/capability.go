package usecase

import (
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aphelionz/pages-restore/pkg/domain/interfaces"
)

// Capabilities collects the external capability providers the
// pipeline depends on. Verification runs once, before the pipeline is
// constructed, and short-circuits the whole run when a provider is
// missing.
type Capabilities struct {
	Client interfaces.PagesClient
	Mirror interfaces.TreeMirror
}

// Verify checks that every required capability is usable and that the
// target path can become a directory.
func (c *Capabilities) Verify(targetDir string) error {
	if c.Client == nil {
		return goerr.New("hosting API client capability is not available")
	}
	if c.Mirror == nil {
		return goerr.New("directory mirroring capability is not available")
	}
	if targetDir == "" {
		return goerr.New("target directory is not configured")
	}

	if fi, err := os.Stat(targetDir); err == nil && !fi.IsDir() {
		return goerr.New("target path exists and is not a directory", goerr.V("target", targetDir))
	}

	return nil
}
