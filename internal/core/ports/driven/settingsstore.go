package driven

import "github.com/custodia-labs/passage-cli/internal/core/domain"

// SettingsStore loads and saves settings on behalf of the consuming shell.
// The core never depends on settings surviving a restart; the store exists so
// the CLI does not reconfigure providers on every invocation.
type SettingsStore interface {
	// Load reads the stored settings. A missing store yields defaults.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(settings domain.Settings) error

	// Path returns the backing location, for display.
	Path() string
}
