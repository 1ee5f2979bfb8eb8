package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driving"
)

// Ensure Session implements the driving ports.
var (
	_ driving.PreprocessService = (*Session)(nil)
	_ driving.SearchService     = (*Session)(nil)
	_ driving.SweepService      = (*Session)(nil)
	_ driving.SettingsService   = (*Session)(nil)
	_ driving.WorkspaceService  = (*Session)(nil)
	_ driving.WatchService      = (*Session)(nil)
)

// pingTimeout is the maximum time to wait for provider connectivity checks.
const pingTimeout = 5 * time.Second

// Session owns all pipeline state for one live workspace: settings, the
// document/chunk collection and the vector index. There are no ambient
// singletons; a session is constructed on workspace selection and torn down
// on reset.
//
// Mutation rights over documents and the index belong to the preprocessing
// run; the query path and exhaustive sweeps only read them.
type Session struct {
	extractors driven.ExtractorRegistry
	providers  driven.ProviderFactory
	index      driven.VectorIndex

	mu        sync.RWMutex
	workspace domain.Workspace
	settings  domain.Settings
	docs      []domain.Document // include-list order

	preprocessSlot runSlot
	sweepSlots     map[domain.SweepMode]*runSlot
}

// NewSession creates a session with default settings.
func NewSession(
	extractors driven.ExtractorRegistry,
	providers driven.ProviderFactory,
	index driven.VectorIndex,
) *Session {
	return &Session{
		extractors: extractors,
		providers:  providers,
		index:      index,
		settings:   domain.DefaultSettings(),
		sweepSlots: map[domain.SweepMode]*runSlot{
			domain.SweepAllDocuments:   {},
			domain.SweepSingleDocument: {},
		},
	}
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// ReplaceSettings replaces the settings wholesale, applying chunking floors
// and caps. An in-flight run keeps the snapshot it started with.
func (s *Session) ReplaceSettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Normalised()
}

// ValidateEmbedding pings the configured embedding endpoint.
func (s *Session) ValidateEmbedding(ctx context.Context) error {
	embedder, err := s.providers.Embedder(s.Settings().Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return embedder.Ping(ctx)
}

// ValidateLLM pings the configured classification endpoint.
func (s *Session) ValidateLLM(ctx context.Context) error {
	classifier, err := s.providers.Classifier(s.Settings().LLM)
	if err != nil {
		return err
	}
	defer classifier.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return classifier.Ping(ctx)
}

// Workspace returns a copy of the current workspace.
func (s *Session) Workspace() domain.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	included := make([]string, len(s.workspace.Included))
	copy(included, s.workspace.Included)
	return domain.Workspace{Root: s.workspace.Root, Included: included}
}

// SetWorkspace replaces the workspace root and include list.
func (s *Session) SetWorkspace(root string, included []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workspace = domain.Workspace{
		Root:     root,
		Included: append([]string(nil), included...),
	}
}

// Reset clears the workspace and all derived state.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.workspace = domain.Workspace{}
	s.docs = nil
	s.mu.Unlock()

	if err := s.index.Reset(ctx); err != nil {
		return fmt.Errorf("reset index: %w", err)
	}
	return nil
}

// Documents returns the documents accumulated by the last run, in
// include-list order.
func (s *Session) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, len(s.docs))
	copy(docs, s.docs)
	return docs
}

// setDocuments replaces the accumulated document state.
func (s *Session) setDocuments(docs []domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
}

// documentByPath returns a copy of one accumulated document.
func (s *Session) documentByPath(path string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.docs {
		if s.docs[i].Path == path {
			return s.docs[i], true
		}
	}
	return domain.Document{}, false
}
