// Package cli implements the docassist command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/doc-assist/docassist-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/doc-assist/docassist-cli/internal/adapters/driven/embedding/ollama"
	"github.com/doc-assist/docassist-cli/internal/adapters/driven/ingest/pdf"
	ollamallm "github.com/doc-assist/docassist-cli/internal/adapters/driven/llm/ollama"
	"github.com/doc-assist/docassist-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/doc-assist/docassist-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/doc-assist/docassist-cli/internal/chunker"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
	"github.com/doc-assist/docassist-cli/internal/core/services"
	"github.com/doc-assist/docassist-cli/internal/logger"
)

var version = "dev"

var (
	flagVerbose   bool
	flagConfig    string
	flagDataDir   string
	flagNoPersist bool
)

// Wired services. Tests inject stubs here before executing commands;
// initServices leaves non-nil values alone.
var (
	configStore driven.ConfigStore
	promptStore driven.PromptStore
	embedderSvc driven.EmbeddingService
	llmSvc      driven.LLMService
	library     driving.Library
)

var rootCmd = &cobra.Command{
	Use:   "docassist",
	Short: "Ask questions about your PDF documents",
	Long: `Docassist ingests a PDF, builds a local vector collection from its
contents, and answers free-text questions grounded in the document.

Embeddings and answers come from a local Ollama server; nothing leaves
your machine. Collections are persisted under the data directory and
reused across runs, so a document is only embedded once.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
}

// Execute runs the root command. The version string is shown by the
// version subcommand.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config directory (default ~/.docassist)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "collection data directory (default ~/.docassist/collections)")
	rootCmd.PersistentFlags().BoolVar(&flagNoPersist, "no-persist", false, "keep the collection in memory instead of writing it to disk")
}

// initServices wires the default adapters. Already-set services (from
// tests or a prior run) are kept.
func initServices() error {
	if configStore == nil {
		store, err := configfile.NewConfigStore(flagConfig)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		configStore = store
	}

	if promptStore == nil {
		store, err := configfile.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("opening prompt store: %w", err)
		}
		promptStore = store
	}

	baseURL := configStore.GetString(driven.KeyOllamaBaseURL)

	if embedderSvc == nil {
		embedderSvc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: baseURL,
			Model:   configStore.GetString(driven.KeyEmbeddingModel),
		})
	}

	if llmSvc == nil {
		llmSvc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: baseURL,
			Model:   configStore.GetString(driven.KeyLLMModel),
		})
	}

	if library == nil {
		var provider driven.StoreProvider
		if flagNoPersist {
			provider = memory.NewProvider()
		} else {
			dataDir, err := resolveDataDir()
			if err != nil {
				return err
			}
			provider = sqlite.NewProvider(dataDir)
		}

		var opts []chunker.Option
		if size := configStore.GetInt(driven.KeyChunkSize); size > 0 {
			opts = append(opts, chunker.WithChunkSize(size))
		}
		if overlap := configStore.GetInt(driven.KeyChunkOverlap); overlap > 0 {
			opts = append(opts, chunker.WithOverlap(overlap))
		}

		svc, err := services.NewLibraryService(services.LibraryConfig{
			Loader:   pdf.New(),
			Embedder: embedderSvc,
			Provider: provider,
			Splitter: chunker.New(opts...),
		})
		if err != nil {
			return fmt.Errorf("creating library: %w", err)
		}
		library = svc
	}

	return nil
}

func resolveDataDir() (string, error) {
	if flagDataDir != "" {
		return flagDataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".docassist", "collections"), nil
}

// newAssistant builds the retrieval and generation pipeline for one
// collection store.
func newAssistant(store driven.VectorStore, collection string) (driving.Assistant, error) {
	retriever, err := services.NewMultiQueryRetriever(services.RetrieverConfig{
		LLM:      llmSvc,
		Embedder: embedderSvc,
		Store:    store,
		Prompts:  promptStore,
		TopK:     configStore.GetInt(driven.KeyRetrieverTopK),
	})
	if err != nil {
		return nil, err
	}

	chain, err := services.NewAnswerChain(llmSvc, promptStore)
	if err != nil {
		return nil, err
	}

	return services.NewAssistantService(retriever, chain, collection)
}
