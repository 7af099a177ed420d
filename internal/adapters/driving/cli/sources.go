package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var sourcesJSON bool

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List ingested sources",
	Long:  `Lists every source in the memory store with its chunk count.`,
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	sources, err := chunkStore.Sources(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	if sourcesJSON {
		return outputSourcesJSON(cmd, sources)
	}

	if len(sources) == 0 {
		cmd.Println("No sources ingested yet.")
		return nil
	}

	for _, src := range sources {
		cmd.Printf("  %s (%d chunks)\n", src.SourceID, src.Chunks)
	}
	return nil
}

func outputSourcesJSON(cmd *cobra.Command, sources []domain.SourceInfo) error {
	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
