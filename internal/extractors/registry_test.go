package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	exts []string
}

func (f *fakeExtractor) Extensions() []string { return f.exts }

func (f *fakeExtractor) Extract(_ context.Context, _ string) ([]string, error) {
	return []string{"page"}, nil
}

func TestRegistry_ExtractorFor(t *testing.T) {
	r := NewRegistry()
	txt := &fakeExtractor{exts: []string{".txt", ".md"}}
	r.Register(txt)

	got, ok := r.ExtractorFor("/ws/a.txt")
	require.True(t, ok)
	assert.Same(t, txt, got)

	// Extension matching is case-insensitive.
	_, ok = r.ExtractorFor("/ws/B.MD")
	assert.True(t, ok)

	_, ok = r.ExtractorFor("/ws/c.pdf")
	assert.False(t, ok)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &fakeExtractor{exts: []string{".txt"}}
	second := &fakeExtractor{exts: []string{".txt"}}
	r.Register(first)
	r.Register(second)

	got, ok := r.ExtractorFor("a.txt")
	require.True(t, ok)
	assert.Same(t, second, got)
}
