package driven

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// ChunkClassifier triages one chunk against a query via an LLM endpoint.
//
// The provider contract is opaque: whatever the transport, each call yields a
// discrete verdict plus an optional free-text reason. Failures surface as
// domain.ErrLLMProvider; cancellation of ctx surfaces as context.Canceled.
type ChunkClassifier interface {
	// Classify returns the verdict for (query, chunk text) and the reason
	// when the verdict is uncertain.
	Classify(ctx context.Context, query, chunkText string) (domain.Verdict, string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the endpoint is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
