package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage provider and chunking settings",
	Long: `View and configure the embedding provider, the LLM provider and the
chunk geometry. Settings are stored in the config directory; the index
itself is never persisted.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Configure the OpenAI-compatible endpoint used for embeddings.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long:  `Configure the OpenAI-compatible endpoint used for sweep verdicts.`,
	RunE:  runSettingsLLM,
}

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking",
	Short: "Configure chunk size and overlap",
	RunE:  runSettingsChunking,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Ping the configured providers",
	RunE:  runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errMissingService("settings")
	}

	settings := settingsService.Settings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, settings.Embedding.BaseURL, settings.Embedding.Model,
		settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, settings.LLM.BaseURL, settings.LLM.Model,
		settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d characters\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d characters\n", settings.Chunking.Overlap)
	cmd.Println()

	if settingsStore != nil {
		cmd.Printf("Stored at %s\n", settingsStore.Path())
	}
	return nil
}

func printProvider(cmd *cobra.Command, baseURL, model, apiKey string, configured bool) {
	cmd.Printf("  Base URL: %s\n", orUnset(baseURL))
	cmd.Printf("  Model: %s\n", orUnset(model))
	if apiKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errMissingService("settings")
	}

	settings := settingsService.Settings()
	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Configure Embedding Provider")
	cmd.Println("----------------------------")
	settings.Embedding.BaseURL = promptString(cmd, reader, "Base URL", settings.Embedding.BaseURL)
	settings.Embedding.Model = promptString(cmd, reader, "Model", settings.Embedding.Model)
	cmd.Print("API key (empty for none): ")
	settings.Embedding.APIKey = readPassword()
	cmd.Println()

	if err := saveSettings(settings); err != nil {
		return err
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbedding(context.Background()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		cmd.Println("Settings were saved anyway; fix and rerun 'passage settings validate'.")
		return nil
	}
	cmd.Println("OK")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errMissingService("settings")
	}

	settings := settingsService.Settings()
	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Configure LLM Provider")
	cmd.Println("----------------------")
	settings.LLM.BaseURL = promptString(cmd, reader, "Base URL", settings.LLM.BaseURL)
	settings.LLM.Model = promptString(cmd, reader, "Model", settings.LLM.Model)
	cmd.Print("API key (empty for none): ")
	settings.LLM.APIKey = readPassword()
	cmd.Println()

	if err := saveSettings(settings); err != nil {
		return err
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLM(context.Background()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		cmd.Println("Settings were saved anyway; fix and rerun 'passage settings validate'.")
		return nil
	}
	cmd.Println("OK")
	return nil
}

func runSettingsChunking(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errMissingService("settings")
	}

	settings := settingsService.Settings()
	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Configure Chunking")
	cmd.Println("------------------")
	settings.Chunking.Size = promptInt(cmd, reader, "Chunk size (characters)", settings.Chunking.Size)
	settings.Chunking.Overlap = promptInt(cmd, reader, "Chunk overlap (characters)", settings.Chunking.Overlap)

	if err := saveSettings(settings); err != nil {
		return err
	}

	// The store and the service both normalise, so echo the effective values.
	applied := settingsService.Settings().Chunking
	cmd.Printf("Chunking set to size %d, overlap %d.\n", applied.Size, applied.Overlap)
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errMissingService("settings")
	}

	failed := false
	cmd.Print("Embedding provider... ")
	if err := settingsService.ValidateEmbedding(context.Background()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed = true
	} else {
		cmd.Println("OK")
	}

	cmd.Print("LLM provider... ")
	if err := settingsService.ValidateLLM(context.Background()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed = true
	} else {
		cmd.Println("OK")
	}

	if failed {
		return fmt.Errorf("provider validation failed")
	}
	return nil
}

// saveSettings applies the settings to the session and persists them.
func saveSettings(settings domain.Settings) error {
	settingsService.ReplaceSettings(settings)
	if settingsStore == nil {
		return nil
	}
	if err := settingsStore.Save(settingsService.Settings()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Helper functions.

func promptString(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

func promptInt(cmd *cobra.Command, reader *bufio.Reader, label string, current int) int {
	cmd.Printf("%s [%d]: ", label, current)
	input := readLine(reader)
	if input == "" {
		return current
	}
	val, err := strconv.Atoi(input)
	if err != nil {
		cmd.Printf("Not a number, keeping %d.\n", current)
		return current
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo first
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
