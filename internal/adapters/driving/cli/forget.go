package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:   "forget [source-id]",
	Short: "Remove a source from the memory store",
	Long: `Deletes all stored chunks for the given source identifier.
Use 'recall sources' to see known identifiers.`,
	Args: cobra.ExactArgs(1),
	RunE: runForget,
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

func runForget(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	sourceID := args[0]
	deleted, err := chunkStore.DeleteSource(cmd.Context(), sourceID)
	if err != nil {
		return fmt.Errorf("forget %s: %w", sourceID, err)
	}

	if deleted == 0 {
		cmd.Printf("Nothing stored for %s\n", sourceID)
		return nil
	}

	cmd.Printf("Forgot %s (%d chunks)\n", sourceID, deleted)
	return nil
}
