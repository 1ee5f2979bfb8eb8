package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/logger"
)

// DefaultHitsPerDocument caps how many chunk hits a single document
// contributes to search results when the caller passes a non-positive limit.
const DefaultHitsPerDocument = 3

// Search embeds the query and ranks every indexed chunk by cosine
// similarity. A fresh embedding client is built from the current settings
// so that settings changes apply to the next search without restarts.
func (s *Session) Search(ctx context.Context, query string, perDocN int) ([]domain.DocumentHits, error) {
	settings := s.Settings()
	if !settings.Embedding.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding host and model are required", domain.ErrSettingsIncomplete)
	}
	if !s.index.Ready() {
		return nil, domain.ErrNotReady
	}
	if perDocN <= 0 {
		perDocN = DefaultHitsPerDocument
	}

	embedder, err := s.providers.Embedder(settings.Embedding)
	if err != nil {
		return nil, err
	}
	defer embedder.Close()

	vector, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.index.Search(ctx, vector, domain.VectorNorm(vector), perDocN)
	if err != nil {
		return nil, err
	}

	logger.Debug("Search %q matched %d documents", query, len(results))
	return results, nil
}
