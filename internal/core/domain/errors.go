package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrWorkspaceNotConfigured indicates no workspace root or include list is set.
	ErrWorkspaceNotConfigured = errors.New("workspace not configured")

	// ErrSettingsIncomplete indicates required provider settings are blank.
	ErrSettingsIncomplete = errors.New("settings incomplete")

	// ErrAlreadyRunning indicates a run is already active in the same slot.
	ErrAlreadyRunning = errors.New("run already in progress")

	// ErrNotReady indicates a similarity query before any document has embeddings.
	ErrNotReady = errors.New("no embedded documents in index")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmbeddingProvider indicates the embedding endpoint failed or returned
	// a malformed response.
	ErrEmbeddingProvider = errors.New("embedding provider error")

	// ErrLLMProvider indicates the classification endpoint failed or returned
	// a malformed response. Non-fatal per chunk during an exhaustive sweep.
	ErrLLMProvider = errors.New("llm provider error")

	// ErrProviderUnreachable wraps the provider error kind when the request
	// could not be sent at all. A streak of these means the endpoint is
	// down, unlike malformed responses from a live endpoint.
	ErrProviderUnreachable = errors.New("provider unreachable")

	// ErrUnexpectedIO indicates a file could not be read during extraction.
	ErrUnexpectedIO = errors.New("unexpected I/O failure")
)
