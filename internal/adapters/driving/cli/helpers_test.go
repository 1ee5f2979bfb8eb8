package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// --- Mock driving services ---

type mockPreprocessService struct {
	events []domain.PreprocessEvent
	err    error
}

func (m *mockPreprocessService) Preprocess(_ context.Context, events chan domain.PreprocessEvent) error {
	for _, ev := range m.events {
		events <- ev
	}
	return m.err
}

func (m *mockPreprocessService) CancelPreprocess() bool { return false }
func (m *mockPreprocessService) Preprocessing() bool    { return false }

type mockSearchService struct {
	results []domain.DocumentHits
	err     error
	gotN    int
}

func (m *mockSearchService) Search(_ context.Context, _ string, perDocN int) ([]domain.DocumentHits, error) {
	m.gotN = perDocN
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

type mockSweepService struct {
	events  []domain.SweepEvent
	err     error
	gotMode domain.SweepMode
	gotDoc  string
}

func (m *mockSweepService) Sweep(
	_ context.Context, mode domain.SweepMode, docPath, _ string, events chan domain.SweepEvent,
) error {
	m.gotMode = mode
	m.gotDoc = docPath
	for _, ev := range m.events {
		events <- ev
	}
	return m.err
}

func (m *mockSweepService) CancelSweep(_ domain.SweepMode) bool { return false }
func (m *mockSweepService) Sweeping(_ domain.SweepMode) bool    { return false }

type mockSettingsService struct {
	settings    domain.Settings
	embedErr    error
	llmErr      error
	validations int
}

func (m *mockSettingsService) Settings() domain.Settings { return m.settings }

func (m *mockSettingsService) ReplaceSettings(settings domain.Settings) {
	m.settings = settings.Normalised()
}

func (m *mockSettingsService) ValidateEmbedding(_ context.Context) error {
	m.validations++
	return m.embedErr
}

func (m *mockSettingsService) ValidateLLM(_ context.Context) error {
	m.validations++
	return m.llmErr
}

type mockWorkspaceService struct {
	workspace domain.Workspace
	docs      []domain.Document
}

func (m *mockWorkspaceService) Workspace() domain.Workspace { return m.workspace }

func (m *mockWorkspaceService) SetWorkspace(root string, included []string) {
	m.workspace = domain.Workspace{Root: root, Included: included}
}

func (m *mockWorkspaceService) Reset(_ context.Context) error { return nil }

func (m *mockWorkspaceService) Documents() []domain.Document { return m.docs }

type mockWatchService struct {
	events []domain.WatchEvent
}

func (m *mockWatchService) Watch(ctx context.Context, events chan domain.WatchEvent) error {
	for _, ev := range m.events {
		events <- ev
	}
	<-ctx.Done()
	return ctx.Err()
}

type mockSettingsStore struct {
	saved    *domain.Settings
	settings domain.Settings
}

func (m *mockSettingsStore) Load() (domain.Settings, error) { return m.settings, nil }

func (m *mockSettingsStore) Save(settings domain.Settings) error {
	m.saved = &settings
	return nil
}

func (m *mockSettingsStore) Path() string { return "/tmp/passage-test/config.toml" }

// --- Test setup ---

// setupTestServices swaps all package-level services for mocks and returns
// a cleanup restoring the originals.
func setupTestServices() func() {
	oldPreprocess := preprocessService
	oldSearch := searchService
	oldSweep := sweepService
	oldSettings := settingsService
	oldWorkspace := workspaceService
	oldWatch := watchService
	oldStore := settingsStore

	preprocessService = &mockPreprocessService{events: []domain.PreprocessEvent{
		{Kind: domain.EventExtract, Current: 1, Total: 1, Path: "/ws/a.txt"},
		{Kind: domain.EventComplete, Documents: 1, Chunks: 2},
	}}
	searchService = &mockSearchService{results: []domain.DocumentHits{
		{DocumentPath: "/ws/a.txt", Hits: []domain.SearchHit{
			{DocumentPath: "/ws/a.txt", ChunkID: 0, Score: 0.91, Page: 1, Text: "matching passage"},
		}},
	}}
	sweepService = &mockSweepService{events: []domain.SweepEvent{
		{Kind: domain.EventChunk, Current: 1, Total: 1, Result: &domain.ClassificationResult{
			DocumentPath: "/ws/a.txt", ChunkID: 0, Page: 1, Text: "passage",
			Verdict: domain.VerdictRelevant,
		}},
		{Kind: domain.EventComplete, Current: 1, Total: 1, Relevant: 1},
	}}
	settingsService = &mockSettingsService{settings: domain.DefaultSettings()}
	workspaceService = &mockWorkspaceService{docs: []domain.Document{
		{Path: "/ws/a.txt", Pages: 1, Chunks: make([]domain.Chunk, 2)},
	}}
	watchService = &mockWatchService{}
	settingsStore = &mockSettingsStore{settings: domain.DefaultSettings()}

	return func() {
		preprocessService = oldPreprocess
		searchService = oldSearch
		sweepService = oldSweep
		settingsService = oldSettings
		workspaceService = oldWorkspace
		watchService = oldWatch
		settingsStore = oldStore
	}
}

// tempWorkspace creates a folder with one text file for commands that walk
// a real directory.
func tempWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o600))
	return dir
}
