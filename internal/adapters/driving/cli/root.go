// Package cli provides the command-line interface for passage.
package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/passage-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/passage-cli/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/passage-cli/internal/core/services"
	"github.com/custodia-labs/passage-cli/internal/extractors"
	"github.com/custodia-labs/passage-cli/internal/extractors/plaintext"
	"github.com/custodia-labs/passage-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose     bool
	configDir   string
	rateLimit   float64
	includeGlob string
)

// Services wired by initServices. Package-level so tests can substitute
// mocks before invoking a command's run function.
var (
	preprocessService driving.PreprocessService
	searchService     driving.SearchService
	sweepService      driving.SweepService
	settingsService   driving.SettingsService
	workspaceService  driving.WorkspaceService
	watchService      driving.WatchService
	settingsStore     driven.SettingsStore
)

var rootCmd = &cobra.Command{
	Use:   "passage",
	Short: "Semantic retrieval over local document folders",
	Long: `Passage chunks, embeds and searches the documents in a local folder.

The index lives in memory only: every command rebuilds it from the source
files, so results always reflect what is on disk. Providers are any
OpenAI-compatible embedding and chat endpoints, local or remote.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

// Execute runs the root command.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "settings directory (default ~/.passage)")
	rootCmd.PersistentFlags().Float64Var(&rateLimit, "rate-limit", 0, "max provider requests per second (0 = unlimited)")
	rootCmd.PersistentFlags().StringVar(&includeGlob, "include", "", "only include files whose base name matches this glob")
}

// initServices wires the session from the stored settings. Services already
// set, by tests or by an embedding caller, are left alone.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if preprocessService != nil {
		return nil
	}

	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return fmt.Errorf("load settings from %s: %w", store.Path(), err)
	}

	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())

	factory := ai.NewFactory()
	factory.RequestsPerSecond = rateLimit

	session := services.NewSession(registry, factory, memory.New())
	session.ReplaceSettings(settings)

	settingsStore = store
	preprocessService = session
	searchService = session
	sweepService = session
	settingsService = session
	workspaceService = session
	watchService = session
	return nil
}

// configureWorkspace points the session at root and builds the include list
// by walking the tree. Hidden files and directories are skipped; the
// optional --include glob narrows the list further.
func configureWorkspace(root string) error {
	if workspaceService == nil {
		return errMissingService("workspace")
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve workspace root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace root %s is not a directory", root)
	}

	var included []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if includeGlob != "" {
			match, globErr := filepath.Match(includeGlob, name)
			if globErr != nil {
				return fmt.Errorf("include glob %q: %w", includeGlob, globErr)
			}
			if !match {
				return nil
			}
		}
		included = append(included, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk workspace: %w", err)
	}
	if len(included) == 0 {
		return fmt.Errorf("no files found under %s", root)
	}

	workspaceService.SetWorkspace(root, included)
	return nil
}

func errMissingService(name string) error {
	return fmt.Errorf("%s service not configured", name)
}
