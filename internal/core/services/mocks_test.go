package services

import (
	"context"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockExtractor implements driven.PageExtractor for testing.
type mockExtractor struct {
	exts      []string
	pages     map[string][]string
	err       error
	onExtract func(path string)
}

func (m *mockExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.onExtract != nil {
		m.onExtract(path)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.pages[path], nil
}

func (m *mockExtractor) Extensions() []string {
	return m.exts
}

// mockEmbedder implements driven.EmbeddingService for testing. Vectors come
// from the vectors map when the text is present, otherwise from a
// deterministic function of the text, so equal texts always embed equally.
type mockEmbedder struct {
	vectors  map[string][]float32
	batchErr error
	batches  [][]string
	closed   bool
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	m.batches = append(m.batches, append([]string(nil), texts...))

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := m.vectors[text]; ok {
			out[i] = vec
			continue
		}
		out[i] = []float32{float32(text[0]), float32(len(text)%7 + 1)}
	}
	return out, nil
}

func (m *mockEmbedder) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbedder) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbedder) Close() error {
	m.closed = true
	return nil
}

// mockClassifier implements driven.ChunkClassifier for testing.
type mockClassifier struct {
	verdicts   map[string]domain.Verdict // keyed by chunk text
	errFor     map[string]error          // per-text failure injection
	err        error                     // fails every call when set
	calls      int
	onClassify func(call int, chunkText string)
	closed     bool
}

func (m *mockClassifier) Classify(ctx context.Context, _, chunkText string) (domain.Verdict, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	m.calls++
	if m.onClassify != nil {
		m.onClassify(m.calls, chunkText)
	}
	if m.err != nil {
		return "", "", m.err
	}
	if err, ok := m.errFor[chunkText]; ok {
		return "", "", err
	}
	if verdict, ok := m.verdicts[chunkText]; ok {
		return verdict, "", nil
	}
	return domain.VerdictUncertain, "no opinion", nil
}

func (m *mockClassifier) ModelName() string {
	return "mock-llm"
}

func (m *mockClassifier) Ping(_ context.Context) error {
	return nil
}

func (m *mockClassifier) Close() error {
	m.closed = true
	return nil
}

// mockFactory implements driven.ProviderFactory for testing.
type mockFactory struct {
	embedder      *mockEmbedder
	classifier    *mockClassifier
	embedderErr   error
	classifierErr error
}

func (m *mockFactory) Embedder(_ domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if m.embedderErr != nil {
		return nil, m.embedderErr
	}
	return m.embedder, nil
}

func (m *mockFactory) Classifier(_ domain.LLMSettings) (driven.ChunkClassifier, error) {
	if m.classifierErr != nil {
		return nil, m.classifierErr
	}
	return m.classifier, nil
}
