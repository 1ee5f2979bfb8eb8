package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

func embedded(id, page int, text string, vec []float32) domain.Chunk {
	c := domain.Chunk{ID: id, Page: page, Text: text}
	c.SetEmbedding(vec)
	return c
}

func TestCosine(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0}
	assert.InDelta(t, 1.0, cosine(a, domain.VectorNorm(a), b, domain.VectorNorm(b)), 1e-9)

	c := []float32{0, 1}
	assert.InDelta(t, 0.0, cosine(a, domain.VectorNorm(a), c, domain.VectorNorm(c)), 1e-9)

	zero := []float32{0, 0}
	got := cosine(a, domain.VectorNorm(a), zero, domain.VectorNorm(zero))
	assert.Equal(t, 0.0, got)
}

func TestIndex_Search_NotReady(t *testing.T) {
	x := New()
	_, err := x.Search(context.Background(), []float32{1, 0}, 1, 5)
	assert.ErrorIs(t, err, domain.ErrNotReady)

	// Documents without embeddings do not make the index ready.
	require.NoError(t, x.Put(context.Background(), domain.Document{
		Path:   "a.txt",
		Chunks: []domain.Chunk{{ID: 0, Page: 1, Text: "plain"}},
	}))
	_, err = x.Search(context.Background(), []float32{1, 0}, 1, 5)
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestIndex_Search_TopNStability(t *testing.T) {
	ctx := context.Background()
	x := New()

	// Ordinals 0 and 2 share an identical vector (equal scores), ordinal 1
	// scores clearly lower. Equal scores keep ordinal order.
	hi := []float32{0.9, 0.1}
	lo := []float32{0.1, 0.9}

	require.NoError(t, x.Put(ctx, domain.Document{
		Path: "doc.txt",
		Chunks: []domain.Chunk{
			embedded(0, 1, "first high", hi),
			embedded(1, 1, "low", lo),
			embedded(2, 1, "second high", hi),
		},
	}))

	query := []float32{1, 0}
	res, err := x.Search(ctx, query, domain.VectorNorm(query), 2)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Len(t, res[0].Hits, 2)

	assert.Equal(t, 0, res[0].Hits[0].ChunkID)
	assert.Equal(t, 2, res[0].Hits[1].ChunkID)
}

func TestIndex_Search_TieBreakIgnoresStorageOrder(t *testing.T) {
	ctx := context.Background()
	x := New()

	// Chunks stored out of ordinal order: the slice holds ordinals 2, 0, 1.
	// Ordinals 2 and 0 tie on score; the tie must resolve to ascending
	// ordinal, not to the order the chunks were stored in.
	hi := []float32{0.9, 0.1}
	lo := []float32{0.1, 0.9}

	require.NoError(t, x.Put(ctx, domain.Document{
		Path: "doc.txt",
		Chunks: []domain.Chunk{
			embedded(2, 1, "stored first", hi),
			embedded(0, 1, "stored second", hi),
			embedded(1, 1, "low", lo),
		},
	}))

	query := []float32{1, 0}
	res, err := x.Search(ctx, query, domain.VectorNorm(query), 2)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Len(t, res[0].Hits, 2)

	assert.Equal(t, 0, res[0].Hits[0].ChunkID)
	assert.Equal(t, 2, res[0].Hits[1].ChunkID)
}

func TestIndex_Search_DocumentOrdering(t *testing.T) {
	ctx := context.Background()
	x := New()

	require.NoError(t, x.Put(ctx, domain.Document{
		Path:   "weak.txt",
		Chunks: []domain.Chunk{embedded(0, 1, "weak", []float32{0, 1})},
	}))
	require.NoError(t, x.Put(ctx, domain.Document{
		Path:   "strong.txt",
		Chunks: []domain.Chunk{embedded(1, 1, "strong", []float32{1, 0})},
	}))
	require.NoError(t, x.Put(ctx, domain.Document{Path: "empty.txt"}))

	query := []float32{1, 0}
	res, err := x.Search(ctx, query, domain.VectorNorm(query), 3)
	require.NoError(t, err)

	// Empty document omitted; best hit first.
	require.Len(t, res, 2)
	assert.Equal(t, "strong.txt", res[0].DocumentPath)
	assert.Equal(t, "weak.txt", res[1].DocumentPath)
	assert.InDelta(t, 1.0, res[0].Hits[0].Score, 1e-6)
}

func TestIndex_Put_ReplacesByPath(t *testing.T) {
	ctx := context.Background()
	x := New()

	require.NoError(t, x.Put(ctx, domain.Document{
		Path:   "a.txt",
		Chunks: []domain.Chunk{embedded(0, 1, "old", []float32{1, 0})},
	}))
	require.NoError(t, x.Put(ctx, domain.Document{
		Path:   "a.txt",
		Chunks: []domain.Chunk{embedded(5, 1, "new", []float32{1, 0})},
	}))

	query := []float32{1, 0}
	res, err := x.Search(ctx, query, domain.VectorNorm(query), 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 5, res[0].Hits[0].ChunkID)
	assert.Equal(t, "new", res[0].Hits[0].Text)
}

func TestIndex_Reset(t *testing.T) {
	ctx := context.Background()
	x := New()

	require.NoError(t, x.Put(ctx, domain.Document{
		Path:   "a.txt",
		Chunks: []domain.Chunk{embedded(0, 1, "text", []float32{1, 0})},
	}))
	require.True(t, x.Ready())

	require.NoError(t, x.Reset(ctx))
	assert.False(t, x.Ready())
}
