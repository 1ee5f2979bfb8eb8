package driven

import "github.com/custodia-labs/passage-cli/internal/core/domain"

// ProviderFactory builds provider adapters from the live settings.
//
// Settings may be replaced between runs, so each run constructs fresh
// providers instead of holding adapters built at startup.
type ProviderFactory interface {
	// Embedder builds an embedding service from the given settings.
	Embedder(settings domain.EmbeddingSettings) (EmbeddingService, error)

	// Classifier builds a chunk classifier from the given settings.
	Classifier(settings domain.LLMSettings) (ChunkClassifier, error)
}
