package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

// pingTimeout bounds each provider connectivity check.
const pingTimeout = 10 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the configured AI provider",
	Long: `Pings the configured embedding and chat backends and reports the
models in use. Exits non-zero when a backend is unreachable.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
	defer cancel()

	healthy := true

	if embedProvider == nil {
		cmd.Println("embedding: not configured")
		healthy = false
	} else if err := embedProvider.Ping(ctx); err != nil {
		cmd.Printf("embedding: %s (%d dimensions) unreachable: %v\n",
			embedProvider.ModelName(), embedProvider.Dimensions(), err)
		healthy = false
	} else {
		cmd.Printf("embedding: %s (%d dimensions) ok\n",
			embedProvider.ModelName(), embedProvider.Dimensions())
	}

	if answerProvider == nil {
		cmd.Println("chat: not configured")
		healthy = false
	} else if err := answerProvider.Ping(ctx); err != nil {
		cmd.Printf("chat: %s unreachable: %v\n", answerProvider.ModelName(), err)
		healthy = false
	} else {
		cmd.Printf("chat: %s ok\n", answerProvider.ModelName())
	}

	if !healthy {
		return errors.New("provider check failed")
	}
	return nil
}
