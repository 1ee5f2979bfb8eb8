package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/logger"
)

// maxConsecutiveTransportFailures aborts a sweep once this many requests in
// a row never reach the endpoint. Failures with any response at all,
// malformed replies included, degrade to uncertain verdicts and never abort;
// an unbroken unreachable streak means the endpoint is down, not flaky.
const maxConsecutiveTransportFailures = 5

// sweepJob is one chunk queued for classification.
type sweepJob struct {
	docPath string
	chunk   domain.Chunk
}

// Sweep classifies every chunk in scope against query, one LLM call per
// chunk, streaming a chunk event carrying the verdict as each lands. The
// all-documents and single-document modes hold independent slots and may run
// concurrently.
//
// A provider failure on one chunk records an uncertain verdict with the
// failure as reason and moves on. Cancellation stops before the next chunk;
// results already streamed stand, and the cancelled event reports how far
// the sweep got.
func (s *Session) Sweep(
	ctx context.Context,
	mode domain.SweepMode,
	docPath, query string,
	events chan domain.SweepEvent,
) error {
	if !mode.IsValid() {
		return fmt.Errorf("unknown sweep mode %q", mode)
	}
	settings := s.Settings()
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: llm host and model are required", domain.ErrSettingsIncomplete)
	}

	jobs, err := s.sweepScope(mode, docPath)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return domain.ErrNotReady
	}

	slot := s.sweepSlots[mode]
	ctx, err = slot.begin(ctx)
	if err != nil {
		return err
	}
	defer slot.end()

	classifier, err := s.providers.Classifier(settings.LLM)
	if err != nil {
		return err
	}
	defer classifier.Close()

	runID := uuid.New().String()
	total := len(jobs)
	logger.Phase("sweep", "run %s: mode %s, %d chunks, model %s", runID, mode, total, classifier.ModelName())

	var relevant, nonRelevant, uncertain, failures int
	for i, job := range jobs {
		// Cancellation safe point: before each chunk.
		if ctx.Err() != nil {
			logger.Info("Sweep cancelled after %d of %d chunks", i, total)
			sendEvent(events, domain.SweepEvent{
				Kind:        domain.EventCancelled,
				RunID:       runID,
				Mode:        mode,
				Current:     i,
				Total:       total,
				Relevant:    relevant,
				NonRelevant: nonRelevant,
				Uncertain:   uncertain,
			})
			return context.Canceled
		}

		verdict, reason, err := classifier.Classify(ctx, query, job.chunk.Text)
		switch {
		case errors.Is(err, context.Canceled):
			// Mid-call cancellation: same partial-keep path as above.
			logger.Info("Sweep cancelled after %d of %d chunks", i, total)
			sendEvent(events, domain.SweepEvent{
				Kind:        domain.EventCancelled,
				RunID:       runID,
				Mode:        mode,
				Current:     i,
				Total:       total,
				Relevant:    relevant,
				NonRelevant: nonRelevant,
				Uncertain:   uncertain,
			})
			return context.Canceled
		case err != nil:
			if errors.Is(err, domain.ErrProviderUnreachable) {
				failures++
			} else {
				// The endpoint answered, however badly; not an outage.
				failures = 0
			}
			if failures >= maxConsecutiveTransportFailures {
				err = fmt.Errorf("classify: endpoint unreachable %d times in a row, last: %w", failures, err)
				logger.Warn("Sweep aborted: %v", err)
				sendEvent(events, domain.SweepEvent{
					Kind:    domain.EventError,
					RunID:   runID,
					Mode:    mode,
					Current: i,
					Total:   total,
					Message: err.Error(),
				})
				return err
			}
			logger.Debug("Chunk %d classification failed, recording uncertain: %v", job.chunk.ID, err)
			verdict = domain.VerdictUncertain
			reason = fmt.Sprintf("classification failed: %v", err)
		default:
			failures = 0
		}

		switch verdict {
		case domain.VerdictRelevant:
			relevant++
		case domain.VerdictNonRelevant:
			nonRelevant++
		default:
			uncertain++
		}

		result := &domain.ClassificationResult{
			DocumentPath: job.docPath,
			ChunkID:      job.chunk.ID,
			Page:         job.chunk.Page,
			Text:         job.chunk.Text,
			Verdict:      verdict,
			Reason:       reason,
		}
		sendEvent(events, domain.SweepEvent{
			Kind:    domain.EventChunk,
			RunID:   runID,
			Mode:    mode,
			Current: i + 1,
			Total:   total,
			Path:    job.docPath,
			Result:  result,
		})
	}

	logger.Info("Sweep complete: %d relevant, %d non-relevant, %d uncertain",
		relevant, nonRelevant, uncertain)
	sendEvent(events, domain.SweepEvent{
		Kind:        domain.EventComplete,
		RunID:       runID,
		Mode:        mode,
		Current:     total,
		Total:       total,
		Relevant:    relevant,
		NonRelevant: nonRelevant,
		Uncertain:   uncertain,
	})
	return nil
}

// sweepScope snapshots the chunks in scope for a sweep. The snapshot is
// taken up front so a concurrent preprocessing run cannot mutate the job
// list mid-sweep.
func (s *Session) sweepScope(mode domain.SweepMode, docPath string) ([]sweepJob, error) {
	var docs []domain.Document
	switch mode {
	case domain.SweepSingleDocument:
		doc, ok := s.documentByPath(docPath)
		if !ok {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, docPath)
		}
		docs = []domain.Document{doc}
	default:
		docs = s.Documents()
	}

	var jobs []sweepJob
	for _, doc := range docs {
		for _, chunk := range doc.Chunks {
			jobs = append(jobs, sweepJob{docPath: doc.Path, chunk: chunk})
		}
	}
	return jobs, nil
}

// CancelSweep requests cancellation of the active sweep in the given mode.
// Returns false if that slot is idle.
func (s *Session) CancelSweep(mode domain.SweepMode) bool {
	slot, ok := s.sweepSlots[mode]
	if !ok {
		return false
	}
	return slot.requestCancel()
}

// Sweeping reports whether the given mode slot is active.
func (s *Session) Sweeping(mode domain.SweepMode) bool {
	slot, ok := s.sweepSlots[mode]
	if !ok {
		return false
	}
	return slot.running()
}
