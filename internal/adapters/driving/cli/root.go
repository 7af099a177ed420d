// Package cli implements the recall command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/recall-labs/recall-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/recall-labs/recall-cli/internal/adapters/driven/embedding/openai"
	extractorpdf "github.com/recall-labs/recall-cli/internal/adapters/driven/extractor/pdf"
	extractorweb "github.com/recall-labs/recall-cli/internal/adapters/driven/extractor/web"
	ollamallm "github.com/recall-labs/recall-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/recall-labs/recall-cli/internal/adapters/driven/llm/openai"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/core/services"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Wired services. Nil until initServices runs; tests inject fakes directly.
var (
	ingestService driving.Ingestor
	askService    driving.Asker
	chunkStore    driven.ChunkStore

	embedProvider  driven.EmbeddingService
	answerProvider driven.AnswerService
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "A local-first memory store for retrieval-augmented answers",
	Long: `recall ingests documents into a local memory store and answers
questions grounded on the most relevant remembered passages.

Documents are chunked, embedded, and stored in a local SQLite database.
Questions are answered by retrieving the closest chunks and passing them
as context to a chat model.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.recall)")
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// initServices wires the real adapters from configuration. Commands that
// need services call this; tests bypass it by pre-setting the package vars.
func initServices() error {
	if ingestService != nil && askService != nil && chunkStore != nil {
		return nil
	}

	settingsStore, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.Debug("Using config at %s", settingsStore.Path())

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("open memory store: %w", err)
	}
	chunkStore = store

	embedder, answerer, err := buildProviders(settings)
	if err != nil {
		return err
	}
	embedProvider, answerProvider = embedder, answerer

	logger.Debug("Embedding model %s (%d dimensions)", embedder.ModelName(), embedder.Dimensions())
	logger.Debug("Chat model %s", answerer.ModelName())

	splitter := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithOverlap(settings.ChunkOverlap),
	)

	ingestService = services.NewIngestService(
		chunkStore,
		embedder,
		splitter,
		extractorpdf.New(),
		extractorweb.New(extractorweb.Config{}),
		settings.EmbedRateLimit,
	)

	retriever := services.NewRetriever(chunkStore)
	askService = services.NewAskService(
		embedder,
		retriever,
		answerer,
		settings.TopK,
		settings.ContextMaxChars,
	)

	return nil
}

// buildProviders constructs the embedding and answer services for the
// configured AI provider.
func buildProviders(s domain.Settings) (driven.EmbeddingService, driven.AnswerService, error) {
	switch s.Provider {
	case domain.AIProviderOllama:
		embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: s.BaseURL,
			Model:   s.EmbedModel,
		})
		answerer := ollamallm.NewAnswerService(ollamallm.Config{
			BaseURL: s.BaseURL,
			Model:   s.ChatModel,
		})
		return embedder, answerer, nil

	case domain.AIProviderOpenAI:
		// The base URL default is the local Ollama endpoint; it makes no
		// sense for OpenAI, so only pass it when the user changed it.
		baseURL := s.BaseURL
		if baseURL == domain.DefaultBaseURL {
			baseURL = ""
		}
		embedModel := s.EmbedModel
		if embedModel == domain.DefaultEmbedModel {
			embedModel = ""
		}
		chatModel := s.ChatModel
		if chatModel == domain.DefaultChatModel {
			chatModel = ""
		}
		embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  s.APIKey,
			BaseURL: baseURL,
			Model:   embedModel,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("configure embedding provider: %w", err)
		}
		answerer, err := openaillm.NewAnswerService(openaillm.Config{
			APIKey:  s.APIKey,
			BaseURL: baseURL,
			Model:   chatModel,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("configure answer provider: %w", err)
		}
		return embedder, answerer, nil

	default:
		return nil, nil, fmt.Errorf("unknown AI provider %q", s.Provider)
	}
}

// closeServices releases resources held by wired services.
func closeServices() {
	if chunkStore != nil {
		if err := chunkStore.Close(); err != nil {
			logger.Warn("Close memory store: %v", err)
		}
		chunkStore = nil
	}
	if embedProvider != nil {
		if err := embedProvider.Close(); err != nil {
			logger.Warn("Close embedding provider: %v", err)
		}
		embedProvider = nil
	}
	if answerProvider != nil {
		if err := answerProvider.Close(); err != nil {
			logger.Warn("Close answer provider: %v", err)
		}
		answerProvider = nil
	}
	ingestService, askService = nil, nil
}

// ExecuteOrExit runs the CLI and exits non-zero on error.
func ExecuteOrExit() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
