package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

var summaryAction string

var summaryCmd = &cobra.Command{
	Use:   "summary [tr-level]",
	Short: "Short Turkish guideline digest for a level and action",
	Long: `Retrieves the most relevant Turkish guideline passages for the given
TI-RADS level and recommended action and prints their excerpts. No
generation is involved; the output is guideline text verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryAction, "action", "", "recommended action: fna, follow_up or no_action (required)")
	_ = summaryCmd.MarkFlagRequired("action")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	action := domain.Action(summaryAction)
	if !action.IsValid() {
		return fmt.Errorf("%w: action %q (expected fna, follow_up or no_action)",
			domain.ErrInvalidInput, summaryAction)
	}

	if err := initServices(); err != nil {
		return err
	}

	cmd.Println(explainService.GuidelineSummary(cmd.Context(), args[0], action))
	return nil
}
