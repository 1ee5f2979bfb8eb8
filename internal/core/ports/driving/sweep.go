package driving

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// SweepService drives exhaustive per-chunk classification sweeps.
//
// The two modes are independent slots: an all-documents sweep and a
// single-document sweep may run concurrently, but starting a second sweep in
// an already-active mode fails with domain.ErrAlreadyRunning.
type SweepService interface {
	// Sweep classifies every chunk of the scoped documents against query,
	// streaming one event per chunk. docPath selects the document for
	// domain.SweepSingleDocument and is ignored for domain.SweepAllDocuments.
	// Per-chunk provider failures are reported as uncertain and do not abort
	// the sweep. Cancellation preserves already-streamed results.
	Sweep(ctx context.Context, mode domain.SweepMode, docPath, query string, events chan domain.SweepEvent) error

	// CancelSweep requests cancellation of the active sweep in the given
	// mode. Returns false if that slot is idle.
	CancelSweep(mode domain.SweepMode) bool

	// Sweeping reports whether the given mode slot is active.
	Sweeping(mode domain.SweepMode) bool
}
