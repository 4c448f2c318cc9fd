// Package cli provides the command-line interface for scholar.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/candela-labs/scholar-cli/internal/adapters/driven/config/file"
	embedollama "github.com/candela-labs/scholar-cli/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/candela-labs/scholar-cli/internal/adapters/driven/llm/ollama"
	memorystore "github.com/candela-labs/scholar-cli/internal/adapters/driven/storage/memory"
	mongostore "github.com/candela-labs/scholar-cli/internal/adapters/driven/storage/mongo"
	sqlitestore "github.com/candela-labs/scholar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/candela-labs/scholar-cli/internal/connectors/arxiv"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driving"
	"github.com/candela-labs/scholar-cli/internal/core/services"
	"github.com/candela-labs/scholar-cli/internal/logger"
	"github.com/candela-labs/scholar-cli/internal/normalisers/abstract"
	"github.com/candela-labs/scholar-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services are injected here at startup. Tests may preset them with
// fakes; initServices only wires what is still nil.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
)

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Retrieval-augmented question answering over scientific abstracts",
	Long: `Scholar ingests recent arXiv abstracts into a local vector index and
answers research questions grounded in the retrieved papers, with
citations back to the source abstracts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// initServices wires the pipeline from the config file. Already-set
// services are left alone.
func initServices(cmd *cobra.Command) error {
	if ingestService != nil && queryService != nil {
		return nil
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := configStore.Config()
	settings := configStore.Settings()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings in %s: %w", configStore.Path(), err)
	}

	embedder := embedollama.NewEmbeddingService(embedollama.Config{
		BaseURL:    cfg.Ollama.BaseURL,
		Model:      cfg.Ollama.EmbeddingModel,
		Dimensions: settings.EmbeddingDimensions,
	})

	llm := llmollama.NewLLMService(llmollama.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.LLMModel,
	})

	store, err := openStore(cmd, cfg, settings.EmbeddingDimensions)
	if err != nil {
		return err
	}

	if queryService == nil {
		queryService = services.NewQueryService(embedder, store, llm, settings)
	}

	if ingestService == nil {
		source := arxiv.New(arxiv.Config{
			BaseURL: cfg.Arxiv.BaseURL,
			Query:   cfg.Arxiv.Query,
		})

		chunkProcessor, err := chunker.New(
			chunker.WithChunkSize(settings.ChunkSize),
			chunker.WithOverlap(settings.ChunkOverlap),
		)
		if err != nil {
			return fmt.Errorf("configuring chunker: %w", err)
		}

		ingestService = services.NewIngestService(source, abstract.New(), chunkProcessor, embedder, store)
	}

	return nil
}

// openStore picks the chunk store backend from configuration.
func openStore(cmd *cobra.Command, cfg file.Config, dimensions int) (driven.ChunkStore, error) {
	switch cfg.Storage.Backend {
	case "mongo":
		store, err := mongostore.NewStore(cmd.Context(), mongostore.Config{
			URI:        cfg.Storage.MongoURI,
			Database:   cfg.Storage.MongoDatabase,
			Dimensions: dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		// A fresh deployment has no search index and every query would
		// silently return zero matches.
		if err := store.EnsureVectorIndex(cmd.Context()); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensuring vector index: %w", err)
		}
		return store, nil
	case "memory":
		return memorystore.NewStore(), nil
	case "sqlite", "":
		store, err := sqlitestore.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
