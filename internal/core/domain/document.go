package domain

import "math"

// Document represents one workspace file after extraction.
// The file path acts as the primary key.
type Document struct {
	// Path is the original file path.
	Path string

	// Pages is the number of extracted pages.
	Pages int

	// Chunks is the ordered sequence of chunks produced from all pages.
	Chunks []Chunk
}

// Chunk is a bounded, possibly overlapping slice of a page's text.
// It is the atomic unit of embedding and retrieval.
type Chunk struct {
	// ID is the chunk ordinal, monotonically increasing across the whole
	// preprocessing run. IDs are never reused.
	ID int

	// Page is the 1-based source page number.
	Page int

	// Text is the raw text slice.
	Text string

	// Embedding is the vector representation. Nil until the embed phase
	// completes for this chunk.
	Embedding []float32

	// Norm is the Euclidean norm of Embedding. Zero while Embedding is nil.
	Norm float64
}

// Embedded reports whether the chunk has an embedding.
func (c *Chunk) Embedded() bool {
	return c.Embedding != nil
}

// SetEmbedding stores the vector and its precomputed norm together,
// keeping them consistent.
func (c *Chunk) SetEmbedding(vec []float32) {
	c.Embedding = vec
	c.Norm = VectorNorm(vec)
}

// VectorNorm returns the Euclidean norm of a vector.
func VectorNorm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}
