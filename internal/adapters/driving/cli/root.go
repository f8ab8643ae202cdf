// Package cli implements the tirads command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/veridia-labs/tirads-cli/internal/adapters/driven/config/file"
	embeddingopenai "github.com/veridia-labs/tirads-cli/internal/adapters/driven/embedding/openai"
	"github.com/veridia-labs/tirads-cli/internal/adapters/driven/extractor/pdffile"
	"github.com/veridia-labs/tirads-cli/internal/adapters/driven/extractor/textfile"
	llmopenai "github.com/veridia-labs/tirads-cli/internal/adapters/driven/llm/openai"
	"github.com/veridia-labs/tirads-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driving"
	"github.com/veridia-labs/tirads-cli/internal/core/services"
	"github.com/veridia-labs/tirads-cli/internal/logger"
	"github.com/veridia-labs/tirads-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

// Services wired lazily by initServices; commands that need no backend
// (version, help) never pay for them.
var (
	settings        configfile.Settings
	vectorStore     driven.VectorStore
	explainService  driving.Explainer
	ingestService   driving.Ingestor
	embeddingPinger pinger
	chatPinger      pinger
)

var rootCmd = &cobra.Command{
	Use:   "tirads",
	Short: "Guideline-grounded explanations for thyroid nodule evaluations",
	Long: `tirads generates guideline-grounded explanations for thyroid nodule
evaluations. It ingests TI-RADS guideline documents into a local vector
store and produces one cited explanation per guideline (Turkish, ACR,
EU-TIRADS) for a given classification.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.tirads)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.tirads/data)")
}

// initServices loads settings and wires the service graph. Safe to call more
// than once; subsequent calls are no-ops.
func initServices() error {
	if vectorStore != nil {
		return nil
	}

	var err error
	settings, err = configfile.Load(flagConfigDir)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = settings.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	vectorStore = store
	logger.Debug("Vector store: %s", store.Path())

	embedder := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
		APIKey:  settings.OpenAIAPIKey,
		BaseURL: settings.OpenAIBaseURL,
		Model:   settings.EmbeddingModel,
	})
	embeddingPinger = embedder

	// A nil chat service makes the explain pipeline degrade gracefully
	// instead of erroring mid-request.
	var chat driven.ChatService
	if settings.OpenAIAPIKey != "" {
		chatService := llmopenai.NewChatService(llmopenai.Config{
			APIKey:  settings.OpenAIAPIKey,
			BaseURL: settings.OpenAIBaseURL,
			Model:   settings.ChatModel,
		})
		chat = chatService
		chatPinger = chatService
	}

	retriever := services.NewRetriever(vectorStore, embedder, services.WithTopK(settings.TopK))
	explainService = services.NewExplainService(retriever, chat)

	tok, err := chunker.NewTiktoken()
	if err != nil {
		return fmt.Errorf("load tokenizer: %w", err)
	}
	ingestService = services.NewIngestService(
		[]driven.PageExtractor{pdffile.New(), textfile.New()},
		tok, embedder, vectorStore,
	)

	return nil
}

// Execute runs the CLI. The version string is stamped by the build.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	defer func() {
		if vectorStore != nil {
			vectorStore.Close()
		}
	}()
	return rootCmd.Execute()
}
