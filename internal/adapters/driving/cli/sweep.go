package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

var (
	sweepDoc  string
	sweepJSON bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [folder] [query]",
	Short: "Classify every chunk against a query",
	Long: `Indexes the folder, then asks the configured LLM for a relevance
verdict on every single chunk. Unlike search, nothing is skipped: every
passage gets an explicit relevant, non-relevant or uncertain verdict.

Use --doc to restrict the sweep to one document. Interrupting a sweep keeps
the verdicts already produced.`,
	Args: cobra.ExactArgs(2),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepDoc, "doc", "", "sweep only this document (path relative to the folder)")
	sweepCmd.Flags().BoolVar(&sweepJSON, "json", false, "output verdicts as JSON lines")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepService == nil {
		return errMissingService("sweep")
	}
	if err := configureWorkspace(args[0]); err != nil {
		return err
	}
	query := args[1]

	mode := domain.SweepAllDocuments
	docPath := ""
	if sweepDoc != "" {
		mode = domain.SweepSingleDocument
		docPath = sweepDoc
		if !filepath.IsAbs(docPath) {
			docPath = filepath.Join(workspaceService.Workspace().Root, docPath)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := preprocessWithProgress(ctx, cmd); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	events := make(chan domain.SweepEvent, 64)
	done := make(chan error, 1)
	go func() {
		done <- sweepService.Sweep(ctx, mode, docPath, query, events)
	}()

	var runErr error
	for finished := false; !finished; {
		select {
		case ev := <-events:
			printSweepEvent(cmd, ev)
		case runErr = <-done:
			finished = true
		}
	}
	for {
		select {
		case ev := <-events:
			printSweepEvent(cmd, ev)
		default:
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return fmt.Errorf("sweep failed: %w", runErr)
			}
			return nil
		}
	}
}

func printSweepEvent(cmd *cobra.Command, ev domain.SweepEvent) {
	switch ev.Kind {
	case domain.EventChunk:
		if ev.Result == nil {
			return
		}
		if sweepJSON {
			if data, err := json.Marshal(ev.Result); err == nil {
				cmd.Println(string(data))
			}
			return
		}
		line := fmt.Sprintf("  [%d/%d] %s p.%d chunk %d: %s",
			ev.Current, ev.Total, filepath.Base(ev.Result.DocumentPath),
			ev.Result.Page, ev.Result.ChunkID, ev.Result.Verdict)
		if ev.Result.Verdict == domain.VerdictUncertain && ev.Result.Reason != "" {
			line += " (" + snippet(ev.Result.Reason, 80) + ")"
		}
		cmd.Println(line)
	case domain.EventComplete:
		cmd.Printf("Sweep complete: %d relevant, %d non-relevant, %d uncertain.\n",
			ev.Relevant, ev.NonRelevant, ev.Uncertain)
	case domain.EventCancelled:
		cmd.Printf("Sweep cancelled after %d of %d chunks: %d relevant, %d non-relevant, %d uncertain.\n",
			ev.Current, ev.Total, ev.Relevant, ev.NonRelevant, ev.Uncertain)
	case domain.EventError:
		cmd.Printf("Error: %s\n", ev.Message)
	}
}
