// Package memory provides the in-memory vector index.
//
// Vectors are grouped by document and scanned exhaustively per query; the
// corpus is a single local folder, so a flat cosine scan is sufficient and
// keeps the index free of any persisted state.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory cosine-similarity index over document chunks.
type Index struct {
	mu   sync.RWMutex
	docs []domain.Document // insertion order
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Put stores a document's chunks, replacing any previous entry for the same
// path.
func (x *Index) Put(_ context.Context, doc domain.Document) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for i := range x.docs {
		if x.docs[i].Path == doc.Path {
			x.docs[i] = doc
			return nil
		}
	}
	x.docs = append(x.docs, doc)
	return nil
}

// Reset discards all documents.
func (x *Index) Reset(_ context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.docs = nil
	return nil
}

// Ready returns true once at least one stored chunk has an embedding.
func (x *Index) Ready() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for i := range x.docs {
		for j := range x.docs[i].Chunks {
			if x.docs[i].Chunks[j].Embedded() {
				return true
			}
		}
	}
	return false
}

// Search ranks every embedded chunk by cosine similarity to the query and
// returns the top perDocN hits per document. Documents are sorted descending
// by their best hit; ties keep insertion order. Documents without embedded
// chunks are omitted.
func (x *Index) Search(
	_ context.Context, query []float32, queryNorm float64, perDocN int,
) ([]domain.DocumentHits, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if perDocN <= 0 {
		perDocN = 1
	}

	results := make([]domain.DocumentHits, 0, len(x.docs))
	ready := false

	for i := range x.docs {
		doc := &x.docs[i]

		hits := make([]domain.SearchHit, 0, len(doc.Chunks))
		for j := range doc.Chunks {
			chunk := &doc.Chunks[j]
			if !chunk.Embedded() {
				continue
			}
			ready = true

			hits = append(hits, domain.SearchHit{
				DocumentPath: doc.Path,
				ChunkID:      chunk.ID,
				Score:        cosine(query, queryNorm, chunk.Embedding, chunk.Norm),
				Page:         chunk.Page,
				Text:         chunk.Text,
			})
		}
		if len(hits) == 0 {
			continue
		}

		// Equal scores rank by ascending chunk ordinal, regardless of the
		// order the chunks were stored in.
		sort.SliceStable(hits, func(a, b int) bool {
			if hits[a].Score != hits[b].Score {
				return hits[a].Score > hits[b].Score
			}
			return hits[a].ChunkID < hits[b].ChunkID
		})
		if len(hits) > perDocN {
			hits = hits[:perDocN]
		}

		results = append(results, domain.DocumentHits{
			DocumentPath: doc.Path,
			Hits:         hits,
		})
	}

	if !ready {
		return nil, domain.ErrNotReady
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Hits[0].Score > results[b].Hits[0].Score
	})

	return results, nil
}

// cosine returns dot(a, b) / (normA * normB), or 0 when either norm is zero.
func cosine(a []float32, normA float64, b []float32, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (normA * normB)
}
