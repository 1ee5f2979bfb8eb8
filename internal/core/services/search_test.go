package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

func TestSearchRequiresSettings(t *testing.T) {
	s := newTestSession(&mockFactory{}, nil, []string{"/ws/a.txt"})
	settings := testSettings()
	settings.Embedding.BaseURL = ""
	s.ReplaceSettings(settings)

	_, err := s.Search(context.Background(), "query", 3)

	assert.ErrorIs(t, err, domain.ErrSettingsIncomplete)
}

func TestSearchRequiresPreprocessing(t *testing.T) {
	s := newTestSession(&mockFactory{embedder: &mockEmbedder{}}, nil, []string{"/ws/a.txt"})

	_, err := s.Search(context.Background(), "query", 3)

	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestSearchRanksDocumentsByBestHit(t *testing.T) {
	textA := strings.Repeat("a", 100)
	textB := strings.Repeat("b", 100)
	embedder := &mockEmbedder{vectors: map[string][]float32{
		textA: {1, 0},
		textB: {0, 1},
	}}
	s := newTestSession(&mockFactory{embedder: embedder},
		map[string][]string{
			"/ws/a.txt": {textA},
			"/ws/b.txt": {textB},
		},
		[]string{"/ws/a.txt", "/ws/b.txt"})

	require.NoError(t, s.Preprocess(context.Background(), make(chan domain.PreprocessEvent, 64)))

	// The query embeds identically to b.txt's only chunk.
	results, err := s.Search(context.Background(), textB, 3)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "/ws/b.txt", results[0].DocumentPath)
	require.NotEmpty(t, results[0].Hits)
	assert.InDelta(t, 1.0, results[0].Hits[0].Score, 1e-6)
	assert.Equal(t, textB, results[0].Hits[0].Text)
	assert.Equal(t, "/ws/a.txt", results[1].DocumentPath)
	assert.InDelta(t, 0.0, results[1].Hits[0].Score, 1e-6)
}

func TestSearchDefaultsPerDocumentLimit(t *testing.T) {
	text := strings.Repeat("a", 1000)
	embedder := &mockEmbedder{}
	s := newTestSession(&mockFactory{embedder: embedder},
		map[string][]string{"/ws/a.txt": {text}}, []string{"/ws/a.txt"})

	require.NoError(t, s.Preprocess(context.Background(), make(chan domain.PreprocessEvent, 64)))

	// 1000 chars at size 200 overlap 50 produces more chunks than the
	// default per-document cap.
	results, err := s.Search(context.Background(), "aaaa", 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Len(t, results[0].Hits, DefaultHitsPerDocument)
}

func TestSearchQueryEmbeddingFailure(t *testing.T) {
	embedder := &mockEmbedder{}
	s := newTestSession(&mockFactory{embedder: embedder},
		map[string][]string{"/ws/a.txt": {"indexed text"}}, []string{"/ws/a.txt"})
	require.NoError(t, s.Preprocess(context.Background(), make(chan domain.PreprocessEvent, 64)))

	embedder.batchErr = domain.ErrEmbeddingProvider
	_, err := s.Search(context.Background(), "query", 3)

	assert.ErrorIs(t, err, domain.ErrEmbeddingProvider)
}
