package domain

// SearchHit is a single scored chunk produced by a similarity query.
// Hits are derived per query and never stored.
type SearchHit struct {
	// DocumentPath identifies the owning document.
	DocumentPath string

	// ChunkID is the matched chunk's ordinal.
	ChunkID int

	// Score is the cosine similarity to the query, range [-1, 1].
	Score float64

	// Page is the 1-based source page of the chunk.
	Page int

	// Text is the chunk text.
	Text string
}

// DocumentHits groups a document's top hits for one query.
type DocumentHits struct {
	// DocumentPath identifies the document.
	DocumentPath string

	// Hits is sorted by descending score. Equal scores keep the original
	// chunk ordinal order.
	Hits []SearchHit
}
