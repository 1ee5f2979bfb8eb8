package driven

import "context"

// PageExtractor produces plain text per page for a file.
//
// Container formats (PDF and friends) are external collaborators behind this
// port. Plain-text-like formats return a single-element sequence holding the
// whole file content.
type PageExtractor interface {
	// Extract returns the ordered page texts for the file at path.
	// Read failures are wrapped in domain.ErrUnexpectedIO.
	Extract(ctx context.Context, path string) ([]string, error)

	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string
}

// ExtractorRegistry selects the page extractor for a file.
// Files with no registered extractor are skipped during preprocessing but
// still advance progress.
type ExtractorRegistry interface {
	// ExtractorFor returns the extractor for the file's extension.
	ExtractorFor(path string) (PageExtractor, bool)

	// Register adds an extractor to the registry. A later registration for
	// the same extension wins.
	Register(extractor PageExtractor)
}
