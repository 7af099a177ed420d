package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded on stored memories",
	Long: `Embeds the question, retrieves the most similar stored chunks,
and asks the chat model to answer using them as context.

The question may be given as multiple arguments:

  recall ask what did the report say about latency`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	question := strings.Join(args, " ")

	answer, err := askService.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if answer == "" {
		// A blank question short-circuits silently; a model that returned
		// nothing for a real question gets a decorative fallback line.
		if strings.TrimSpace(question) != "" {
			cmd.Println(domain.PickFallback(time.Now().UnixNano()))
		}
		return nil
	}

	cmd.Println(answer)
	return nil
}
