package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/veridia-labs/tirads-cli/internal/adapters/driven/config/file"
)

// pinger is the live connectivity check the API adapters expose.
type pinger interface {
	Ping(ctx context.Context) error
}

var statusCheck bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store and configuration status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusCheck, "check", false, "check embedding and chat API connectivity")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	configPath, err := configfile.Path(flagConfigDir)
	if err != nil {
		return err
	}

	count, err := vectorStore.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	cmd.Printf("Config file:      %s\n", configPath)
	cmd.Printf("Embedding model:  %s\n", settings.EmbeddingModel)
	cmd.Printf("Chat model:       %s\n", settings.ChatModel)
	cmd.Printf("API key:          %s\n", keyStatus(settings.OpenAIAPIKey))
	cmd.Printf("Stored chunks:    %d\n", count)
	cmd.Printf("Ready:            %t\n", vectorStore.IsReady(cmd.Context()))

	if statusCheck {
		cmd.Printf("Embedding API:    %s\n", pingStatus(cmd.Context(), embeddingPinger))
		cmd.Printf("Chat API:         %s\n", pingStatus(cmd.Context(), chatPinger))
	}
	return nil
}

func keyStatus(key string) string {
	if key == "" {
		return "not configured"
	}
	return "configured"
}

// pingStatus runs a live connectivity check against one API adapter.
func pingStatus(ctx context.Context, p pinger) string {
	if p == nil {
		return "not configured"
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Sprintf("unreachable (%v)", err)
	}
	return "ok"
}
