package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new documents",
	Long: `Watches a directory for new or modified PDF and text files and
ingests them automatically. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce,
		"quiet period before a changed file is ingested")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	w, err := watcher.New(ingestService, args[0], watchDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
