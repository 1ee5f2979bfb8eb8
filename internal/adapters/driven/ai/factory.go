// Package ai builds provider adapters from the live settings.
package ai

import (
	"fmt"

	embedopenai "github.com/custodia-labs/passage-cli/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/custodia-labs/passage-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ProviderFactory = (*Factory)(nil)

// Factory creates OpenAI-compatible provider adapters. Each preprocessing
// run and sweep builds fresh adapters so that settings replaced between runs
// take effect without restarting the session.
type Factory struct {
	// RequestsPerSecond throttles provider calls when > 0.
	RequestsPerSecond float64
}

// NewFactory creates a provider factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Embedder builds an embedding service from the given settings.
func (f *Factory) Embedder(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding host and model are required", domain.ErrSettingsIncomplete)
	}

	return embedopenai.NewEmbeddingService(embedopenai.Config{
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		APIKey:            settings.APIKey,
		RequestsPerSecond: f.RequestsPerSecond,
	})
}

// Classifier builds a chunk classifier from the given settings.
func (f *Factory) Classifier(settings domain.LLMSettings) (driven.ChunkClassifier, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: LLM host and model are required", domain.ErrSettingsIncomplete)
	}

	return llmopenai.NewClassifier(llmopenai.Config{
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		APIKey:            settings.APIKey,
		RequestsPerSecond: f.RequestsPerSecond,
	})
}
