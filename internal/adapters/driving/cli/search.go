package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [folder] [query]",
	Short: "Search a folder's documents semantically",
	Long: `Indexes the folder and ranks its chunks by cosine similarity to the
query. Results are grouped per document; each document shows its best
matching passages.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 3, "passages shown per document")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errMissingService("search")
	}
	if err := configureWorkspace(args[0]); err != nil {
		return err
	}
	query := args[1]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := preprocessWithProgress(ctx, cmd); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	results, err := searchService.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.DocumentHits) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.DocumentHits) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println()
	for i, doc := range results {
		cmd.Printf("[%d] %s\n", i+1, filepath.Base(doc.DocumentPath))
		for _, hit := range doc.Hits {
			cmd.Printf("    p.%d (%.3f)  %s\n", hit.Page, hit.Score, snippet(hit.Text, 120))
		}
		cmd.Println()
	}
	return nil
}

// snippet flattens whitespace and truncates to limit characters.
func snippet(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit]) + "..."
}
