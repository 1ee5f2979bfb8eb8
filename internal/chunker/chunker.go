// Package chunker splits page text into overlapping fixed-size character
// windows.
package chunker

import (
	"strings"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// Chunker splits text into windows of a fixed character size.
// It is a pure function holder: no I/O, no side effects, deterministic.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the window size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options. Floors and caps are applied:
// effective size is at least domain.MinChunkSize and effective overlap is at
// most domain.MaxOverlapRatio of the effective size.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:    domain.DefaultChunkSize,
		overlap: domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	norm := domain.ChunkSettings{Size: c.size, Overlap: c.overlap}.Normalised()
	c.size = norm.Size
	c.overlap = norm.Overlap

	return c
}

// Size returns the effective window size.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the effective overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Piece is one window of a page's text.
type Piece struct {
	// Page is the 1-based source page number.
	Page int

	// Text is the window content.
	Text string
}

// Split windows the page text. Windows advance by (size - overlap)
// characters; the final window may be shorter. Blank or whitespace-only
// input produces no pieces.
//
// Removing the overlapped prefix of every window after the first
// reconstructs the input exactly.
func (c *Chunker) Split(text string, page int) []Piece {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	step := c.size - c.overlap

	pieces := make([]Piece, 0, total/step+1)

	for start := 0; start < total; start += step {
		end := start + c.size
		if end > total {
			end = total
		}

		pieces = append(pieces, Piece{
			Page: page,
			Text: string(runes[start:end]),
		})

		if end == total {
			break
		}
	}

	return pieces
}
