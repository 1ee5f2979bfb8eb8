package driven

import "context"

// EmbeddingService generates vector embeddings from text against an
// OpenAI-compatible endpoint.
//
// EmbedBatch issues exactly one request per call; batching across the corpus
// is the orchestrator's responsibility. Cancellation of ctx aborts an
// in-flight request and surfaces as context.Canceled, distinguishable from
// domain.ErrEmbeddingProvider failures.
type EmbeddingService interface {
	// Embed generates an embedding for a single text (used for queries).
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// The result has the same length and order as the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the endpoint is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
