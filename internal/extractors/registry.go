// Package extractors selects page extractors by file extension.
//
// The registry dispatches on the lower-cased extension. Container formats
// (PDF and similar) register their own extractors from outside the core;
// this package only ships the plain-text family.
package extractors

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to page extractors.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]driven.PageExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]driven.PageExtractor),
	}
}

// Register adds an extractor for each extension it reports.
// A later registration for the same extension wins.
func (r *Registry) Register(extractor driven.PageExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.Extensions() {
		r.byExt[strings.ToLower(ext)] = extractor
	}
}

// ExtractorFor returns the extractor for the file's extension.
func (r *Registry) ExtractorFor(path string) (driven.PageExtractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return extractor, ok
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
