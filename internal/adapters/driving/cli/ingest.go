package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add documents to the memory store",
	Long: `Ingests a document: its text is split into overlapping chunks,
each chunk is embedded, and the results are stored locally.

Re-ingesting the same source overwrites its previous chunks.`,
}

var ingestPDFName string

var ingestPDFCmd = &cobra.Command{
	Use:   "pdf [path]",
	Short: "Ingest a PDF file",
	Long: `Extracts the text of a PDF and stores it. Pass "-" as the path to
read the PDF from standard input; --name then controls the stored
source name. Example:

  curl -s https://example.com/report.pdf | recall ingest pdf - --name report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestPDF,
}

var ingestURLCmd = &cobra.Command{
	Use:   "url [url]",
	Short: "Ingest a web page",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestURL,
}

var ingestTextCmd = &cobra.Command{
	Use:   "text [source-id]",
	Short: "Ingest plain text from stdin",
	Long: `Reads text from standard input and stores it under the given
source identifier. Example:

  cat notes.txt | recall ingest text notes`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestText,
}

func init() {
	ingestPDFCmd.Flags().StringVar(&ingestPDFName, "name", "stdin.pdf", "source name when reading the PDF from stdin")
	ingestCmd.AddCommand(ingestPDFCmd)
	ingestCmd.AddCommand(ingestURLCmd)
	ingestCmd.AddCommand(ingestTextCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestPDF(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	path := args[0]
	if path == "-" {
		name := strings.TrimSpace(ingestPDFName)
		if name == "" {
			return errors.New("--name must not be empty when reading from stdin")
		}
		if err := ingestService.IngestPDFStream(cmd.Context(), name, cmd.InOrStdin()); err != nil {
			if errors.Is(err, domain.ErrNoExtractableContent) {
				return fmt.Errorf("no extractable text in %s (scanned PDF without OCR?)", name)
			}
			return fmt.Errorf("ingest pdf: %w", err)
		}
		cmd.Printf("Ingested %s\n", name)
		return nil
	}

	if err := ingestService.IngestPDF(cmd.Context(), path); err != nil {
		if errors.Is(err, domain.ErrNoExtractableContent) {
			return fmt.Errorf("no extractable text in %s (scanned PDF without OCR?)", path)
		}
		return fmt.Errorf("ingest pdf: %w", err)
	}

	cmd.Printf("Ingested %s\n", path)
	return nil
}

func runIngestURL(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	url := args[0]
	if err := ingestService.IngestURL(cmd.Context(), url); err != nil {
		return fmt.Errorf("ingest url: %w", err)
	}

	cmd.Printf("Ingested %s\n", url)
	return nil
}

func runIngestText(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	sourceID := strings.TrimSpace(args[0])
	if sourceID == "" {
		return errors.New("source-id must not be empty")
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	if err := ingestService.IngestText(cmd.Context(), sourceID, string(data)); err != nil {
		if errors.Is(err, domain.ErrNoExtractableContent) {
			return errors.New("no text received on stdin")
		}
		return fmt.Errorf("ingest text: %w", err)
	}

	cmd.Printf("Ingested %s\n", sourceID)
	return nil
}
