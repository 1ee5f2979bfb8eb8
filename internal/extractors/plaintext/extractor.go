// Package plaintext extracts plain-text-like files as a single page.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor reads the whole file content as one page.
type Extractor struct{}

// New creates a plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the plain-text-like extensions.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".log", ".rst"}
}

// Extract returns a single-element sequence containing the file content.
func (e *Extractor) Extract(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrUnexpectedIO, path, err)
	}

	return []string{string(data)}, nil
}
