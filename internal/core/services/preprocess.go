package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/passage-cli/internal/chunker"
	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/logger"
)

// EmbedBatchSize is the number of chunks embedded per provider request.
const EmbedBatchSize = 64

// Preprocess runs extraction, chunking and embedding across the whole
// workspace, streaming progress into events. Exactly one run may be active;
// a concurrent call fails fast with domain.ErrAlreadyRunning.
//
// Cancellation is checked before each file and before each batch. On
// cancellation all accumulated document and index state is discarded: a
// partial index would serve stale or incomplete results, so none survives.
// On any other mid-run error the run aborts with an error event and the
// state is left as accumulated; callers must not trust it.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *Session) Preprocess(ctx context.Context, events chan domain.PreprocessEvent) error {
	workspace := s.Workspace()
	settings := s.Settings()

	// Precondition failures are returned synchronously, never as events.
	if !workspace.IsConfigured() {
		return domain.ErrWorkspaceNotConfigured
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding host and model are required", domain.ErrSettingsIncomplete)
	}

	ctx, err := s.preprocessSlot.begin(ctx)
	if err != nil {
		return err
	}
	defer s.preprocessSlot.end()

	runID := uuid.New().String()
	logger.Phase("extract", "run %s: %d files, chunk size %d, overlap %d",
		runID, len(workspace.Included), settings.Chunking.Size, settings.Chunking.Overlap)

	// No incremental reuse: every run starts from a clean slate.
	s.setDocuments(nil)
	if err := s.index.Reset(ctx); err != nil {
		return s.failPreprocess(events, runID, fmt.Errorf("reset index: %w", err))
	}

	docs, err := s.extractAll(ctx, workspace, settings, events, runID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return s.rollbackPreprocess(ctx, events, runID)
		}
		return s.failPreprocess(events, runID, err)
	}
	s.setDocuments(docs)

	if err := s.embedAll(ctx, docs, settings, events, runID); err != nil {
		if errors.Is(err, context.Canceled) {
			return s.rollbackPreprocess(ctx, events, runID)
		}
		return s.failPreprocess(events, runID, err)
	}
	s.setDocuments(docs)

	for _, doc := range docs {
		if err := s.index.Put(ctx, doc); err != nil {
			return s.failPreprocess(events, runID, fmt.Errorf("index document: %w", err))
		}
	}

	totalChunks := 0
	for _, doc := range docs {
		totalChunks += len(doc.Chunks)
	}

	logger.Info("Preprocessing complete: %d documents, %d chunks", len(docs), totalChunks)
	sendEvent(events, domain.PreprocessEvent{
		Kind:      domain.EventComplete,
		RunID:     runID,
		Documents: len(docs),
		Chunks:    totalChunks,
	})
	return nil
}

// extractAll runs the extract phase: page extraction and chunking for every
// included file, in list order. Unsupported extensions are skipped but still
// advance progress. Chunk ordinals increase monotonically across the whole
// run and are never reused.
func (s *Session) extractAll(
	ctx context.Context,
	workspace domain.Workspace,
	settings domain.Settings,
	events chan domain.PreprocessEvent,
	runID string,
) ([]domain.Document, error) {
	split := chunker.New(
		chunker.WithSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)

	total := len(workspace.Included)
	docs := make([]domain.Document, 0, total)
	nextChunkID := 0

	for i, path := range workspace.Included {
		// Cancellation safe point: before each file.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		extractor, ok := s.extractors.ExtractorFor(path)
		if !ok {
			logger.Debug("Skipping %s: no extractor for extension", path)
			sendEvent(events, domain.PreprocessEvent{
				Kind:    domain.EventExtract,
				RunID:   runID,
				Current: i + 1,
				Total:   total,
				Path:    path,
			})
			continue
		}

		pages, err := extractor.Extract(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", path, err)
		}

		doc := domain.Document{Path: path, Pages: len(pages)}
		for pageIdx, pageText := range pages {
			for _, piece := range split.Split(pageText, pageIdx+1) {
				doc.Chunks = append(doc.Chunks, domain.Chunk{
					ID:   nextChunkID,
					Page: piece.Page,
					Text: piece.Text,
				})
				nextChunkID++
			}
		}
		docs = append(docs, doc)

		logger.Debug("Extracted %s: %d pages, %d chunks", path, doc.Pages, len(doc.Chunks))
		sendEvent(events, domain.PreprocessEvent{
			Kind:    domain.EventExtract,
			RunID:   runID,
			Current: i + 1,
			Total:   total,
			Path:    path,
		})
	}

	return docs, nil
}

// embedAll runs the embed phase: all chunks across all documents are
// flattened into one global job list (per-document order preserved,
// documents in include-list order) and embedded in fixed-size batches.
// Each embedded chunk's norm is computed immediately.
func (s *Session) embedAll(
	ctx context.Context,
	docs []domain.Document,
	settings domain.Settings,
	events chan domain.PreprocessEvent,
	runID string,
) error {
	embedder, err := s.providers.Embedder(settings.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	var jobs []*domain.Chunk
	for i := range docs {
		for j := range docs[i].Chunks {
			jobs = append(jobs, &docs[i].Chunks[j])
		}
	}
	total := len(jobs)

	logger.Phase("embed", "%d chunks in batches of %d with model %s",
		total, EmbedBatchSize, embedder.ModelName())

	for start := 0; start < total; start += EmbedBatchSize {
		// Cancellation safe point: before each batch.
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + EmbedBatchSize
		if end > total {
			end = total
		}
		batch := jobs[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("%w: batch returned %d vectors for %d texts",
				domain.ErrEmbeddingProvider, len(vectors), len(batch))
		}

		for i, chunk := range batch {
			chunk.SetEmbedding(vectors[i])
		}

		sendEvent(events, domain.PreprocessEvent{
			Kind:    domain.EventEmbed,
			RunID:   runID,
			Current: end,
			Total:   total,
		})
	}

	return nil
}

// rollbackPreprocess discards all accumulated state and emits the cancelled
// terminal event. Cancellation is never reported as an error event.
func (s *Session) rollbackPreprocess(
	ctx context.Context, events chan domain.PreprocessEvent, runID string,
) error {
	s.setDocuments(nil)
	if err := s.index.Reset(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("Failed to reset index after cancellation: %v", err)
	}

	logger.Info("Preprocessing cancelled, partial state discarded")
	sendEvent(events, domain.PreprocessEvent{
		Kind:  domain.EventCancelled,
		RunID: runID,
	})
	return context.Canceled
}

// failPreprocess emits the error terminal event and returns the failure.
// Accumulated state is left as-is; it carries no completeness guarantee.
func (s *Session) failPreprocess(
	events chan domain.PreprocessEvent, runID string, err error,
) error {
	logger.Warn("Preprocessing failed: %v", err)
	sendEvent(events, domain.PreprocessEvent{
		Kind:    domain.EventError,
		RunID:   runID,
		Message: err.Error(),
	})
	return err
}

// CancelPreprocess requests cancellation of the active run. The run notices
// at its next safe point, discards accumulated state and emits the cancelled
// event. Returns false if nothing is running.
func (s *Session) CancelPreprocess() bool {
	return s.preprocessSlot.requestCancel()
}

// Preprocessing reports whether a run is active.
func (s *Session) Preprocessing() bool {
	return s.preprocessSlot.running()
}
