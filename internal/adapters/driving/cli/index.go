package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index [folder]",
	Short: "Extract, chunk and embed a folder's documents",
	Long: `Runs the preprocessing pipeline over every file in the folder:
page extraction, chunking and embedding. Prints per-document statistics.

The resulting index is in-memory only and is discarded when the command
exits; search and sweep rebuild it themselves. Use this command to verify
extraction and provider settings before a long sweep.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if preprocessService == nil {
		return errMissingService("preprocess")
	}
	if err := configureWorkspace(args[0]); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := preprocessWithProgress(ctx, cmd); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	docs := workspaceService.Documents()
	cmd.Println()
	for _, doc := range docs {
		cmd.Printf("  %s: %d pages, %d chunks\n", doc.Path, doc.Pages, len(doc.Chunks))
	}
	return nil
}

// preprocessWithProgress runs preprocessing while printing progress events.
// Returns context.Canceled when the run was interrupted; callers decide
// whether that counts as a command failure.
func preprocessWithProgress(ctx context.Context, cmd *cobra.Command) error {
	events := make(chan domain.PreprocessEvent, 64)
	done := make(chan error, 1)
	go func() {
		done <- preprocessService.Preprocess(ctx, events)
	}()

	var runErr error
	for finished := false; !finished; {
		select {
		case ev := <-events:
			printPreprocessEvent(cmd, ev)
		case runErr = <-done:
			finished = true
		}
	}

	// The run has returned; drain whatever progress is still buffered.
	for {
		select {
		case ev := <-events:
			printPreprocessEvent(cmd, ev)
		default:
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return fmt.Errorf("preprocessing failed: %w", runErr)
			}
			return runErr
		}
	}
}

func printPreprocessEvent(cmd *cobra.Command, ev domain.PreprocessEvent) {
	switch ev.Kind {
	case domain.EventExtract:
		cmd.Printf("  [%d/%d] %s\n", ev.Current, ev.Total, ev.Path)
	case domain.EventEmbed:
		cmd.Printf("  embedded %d/%d chunks\n", ev.Current, ev.Total)
	case domain.EventComplete:
		cmd.Printf("Indexed %d documents, %d chunks.\n", ev.Documents, ev.Chunks)
	case domain.EventCancelled:
		cmd.Println("Cancelled. Partial index discarded.")
	case domain.EventError:
		cmd.Printf("Error: %s\n", ev.Message)
	}
}
