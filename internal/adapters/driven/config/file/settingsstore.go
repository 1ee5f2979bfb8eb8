// Package file provides the TOML-backed settings store.
//
// The core index is volatile and rebuilt every run; only the settings are
// worth keeping between CLI invocations. They live in
// ~/.passage/config.toml unless another directory is given.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore persists settings as a TOML file.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// settingsFile is the on-disk TOML shape.
type settingsFile struct {
	Embedding providerSection `toml:"embedding"`
	LLM       providerSection `toml:"llm"`
	Chunking  chunkingSection `toml:"chunking"`
}

type providerSection struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

type chunkingSection struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// NewSettingsStore creates a TOML settings store.
// If configDir is empty, defaults to ~/.passage.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".passage")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the stored settings. A missing file yields defaults.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, err
	}

	var f settingsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return domain.Settings{}, err
	}

	settings := domain.Settings{
		Embedding: domain.EmbeddingSettings{
			BaseURL: f.Embedding.BaseURL,
			Model:   f.Embedding.Model,
			APIKey:  f.Embedding.APIKey,
		},
		LLM: domain.LLMSettings{
			BaseURL: f.LLM.BaseURL,
			Model:   f.LLM.Model,
			APIKey:  f.LLM.APIKey,
		},
		Chunking: domain.ChunkSettings{
			Size:    f.Chunking.Size,
			Overlap: f.Chunking.Overlap,
		},
	}
	if settings.Chunking.Size == 0 && settings.Chunking.Overlap == 0 {
		settings.Chunking = domain.DefaultSettings().Chunking
	}

	return settings.Normalised(), nil
}

// Save persists the settings.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := settingsFile{
		Embedding: providerSection{
			BaseURL: settings.Embedding.BaseURL,
			Model:   settings.Embedding.Model,
			APIKey:  settings.Embedding.APIKey,
		},
		LLM: providerSection{
			BaseURL: settings.LLM.BaseURL,
			Model:   settings.LLM.Model,
			APIKey:  settings.LLM.APIKey,
		},
		Chunking: chunkingSection{
			Size:    settings.Chunking.Size,
			Overlap: settings.Chunking.Overlap,
		},
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return err
	}

	// Restricted permissions: the file may hold API keys.
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
