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

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Index a folder and report when files go stale",
	Long: `Indexes the folder, then watches the included files and reports
every change that makes the in-memory index stale. The index is never
rebuilt automatically; rerun the command to refresh it.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errMissingService("watch")
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

	cmd.Println("Watching for changes. Press Ctrl-C to stop.")

	events := make(chan domain.WatchEvent, 64)
	done := make(chan error, 1)
	go func() {
		done <- watchService.Watch(ctx, events)
	}()

	for {
		select {
		case ev := <-events:
			cmd.Printf("  stale: %s\n", ev.Path)
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		}
	}
}
