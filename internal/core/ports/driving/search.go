package driving

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// SearchService answers top-N similarity queries against the in-memory index.
type SearchService interface {
	// Search embeds the query once and ranks every embedded chunk, returning
	// the top perDocN hits per document. Returns domain.ErrNotReady before
	// any preprocessing run has populated embeddings.
	Search(ctx context.Context, query string, perDocN int) ([]domain.DocumentHits, error)
}
