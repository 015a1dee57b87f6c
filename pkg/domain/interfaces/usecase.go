package interfaces

import (
	"context"

	"github.com/aphelionz/pages-restore/pkg/domain/model"
)

// RestoreUseCase runs the artifact restore pipeline once.
type RestoreUseCase interface {
	// Restore locates, downloads, validates and applies the latest
	// publication artifact. A non-nil error is a fatal abort; a
	// Skipped outcome is a soft no-op that leaves the target untouched.
	Restore(ctx context.Context) (*model.Outcome, error)
}
