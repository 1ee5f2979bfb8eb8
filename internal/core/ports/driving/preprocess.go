package driving

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// PreprocessService drives extraction, chunking and embedding across the
// whole workspace.
type PreprocessService interface {
	// Preprocess runs the full pipeline, streaming progress into events.
	// It returns once the run reaches a terminal state. Precondition
	// failures (domain.ErrWorkspaceNotConfigured, domain.ErrSettingsIncomplete,
	// domain.ErrAlreadyRunning) are returned synchronously and never emitted
	// as events. Cancellation discards all accumulated state.
	Preprocess(ctx context.Context, events chan domain.PreprocessEvent) error

	// CancelPreprocess requests cancellation of the active run.
	// Returns false if nothing is running.
	CancelPreprocess() bool

	// Preprocessing reports whether a run is active.
	Preprocessing() bool
}
