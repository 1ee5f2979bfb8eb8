package driven

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// VectorIndex stores chunk vectors grouped by document and ranks them by
// cosine similarity. The index is volatile: it is rebuilt from source
// documents on every preprocessing run.
//
// Mutation rights belong to the preprocessing orchestrator; the query path
// only reads.
type VectorIndex interface {
	// Put stores a document's chunks, replacing any previous entry for the
	// same path. Documents are ranked in insertion order on ties.
	Put(ctx context.Context, doc domain.Document) error

	// Reset discards all documents.
	Reset(ctx context.Context) error

	// Ready returns true once at least one stored chunk has an embedding.
	Ready() bool

	// Search returns, per document, the top perDocN chunks by descending
	// cosine similarity to the query vector. Documents are sorted by their
	// best hit; documents without embedded chunks are omitted. Returns
	// domain.ErrNotReady when no document has embeddings.
	Search(ctx context.Context, query []float32, queryNorm float64, perDocN int) ([]domain.DocumentHits, error)
}
