package driving

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// SettingsService manages pipeline settings.
type SettingsService interface {
	// Settings returns a copy of the current settings.
	Settings() domain.Settings

	// ReplaceSettings replaces the settings wholesale, applying chunking
	// floors and caps. Replacing settings during a run has last-write-wins
	// semantics; the in-flight run keeps its snapshot.
	ReplaceSettings(settings domain.Settings)

	// ValidateEmbedding pings the configured embedding endpoint.
	ValidateEmbedding(ctx context.Context) error

	// ValidateLLM pings the configured classification endpoint.
	ValidateLLM(ctx context.Context) error
}

// WorkspaceService manages the live workspace.
type WorkspaceService interface {
	// Workspace returns a copy of the current workspace.
	Workspace() domain.Workspace

	// SetWorkspace replaces the workspace root and include list.
	SetWorkspace(root string, included []string)

	// Reset clears the workspace and all derived document and index state.
	Reset(ctx context.Context) error

	// Documents returns the documents accumulated by the last run,
	// in include-list order.
	Documents() []domain.Document
}

// WatchService observes included files for changes after a completed run.
type WatchService interface {
	// Watch emits a domain.WatchEvent whenever an included file changes on
	// disk. It blocks until ctx is cancelled. The index is never rebuilt
	// implicitly; consumers decide when to re-run preprocessing.
	Watch(ctx context.Context, events chan domain.WatchEvent) error
}
