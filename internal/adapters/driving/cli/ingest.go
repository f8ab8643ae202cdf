package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridia-labs/tirads-cli/internal/core/ports/driving"
)

var (
	ingestCorpusDir    string
	ingestReset        bool
	ingestChunkSize    int
	ingestChunkOverlap int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest guideline documents into the vector store",
	Long: `Processes every supported file (PDF, text) in the corpus directory:
extracts page text, splits it into overlapping token chunks, embeds the
chunks and stores them locally. A document that fails is reported and
skipped; the rest of the corpus still ingests.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCorpusDir, "corpus", "", "corpus directory (default from config)")
	ingestCmd.Flags().BoolVar(&ingestReset, "reset", false, "delete the existing collection before ingesting")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "chunk size in tokens (default 800)")
	ingestCmd.Flags().IntVar(&ingestChunkOverlap, "chunk-overlap", 0, "chunk overlap in tokens (default 120)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	corpusDir := ingestCorpusDir
	if corpusDir == "" {
		corpusDir = settings.CorpusDir
	}
	if corpusDir == "" {
		return errors.New("no corpus directory: pass --corpus or set corpus_dir in the config")
	}

	chunkSize := settings.ChunkSize
	if cmd.Flags().Changed("chunk-size") {
		chunkSize = ingestChunkSize
	}
	chunkOverlap := settings.ChunkOverlap
	if cmd.Flags().Changed("chunk-overlap") {
		chunkOverlap = ingestChunkOverlap
	}

	report, err := ingestService.IngestDir(cmd.Context(), corpusDir, driving.IngestOptions{
		Reset:        ingestReset,
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingestion run %s\n\n", report.RunID)
	for _, doc := range report.Documents {
		if doc.Err != nil {
			cmd.Printf("  %s: FAILED (%v)\n", doc.DocID, doc.Err)
			continue
		}
		cmd.Printf("  %s: %d pages, %d chunks\n", doc.DocID, doc.Pages, doc.Chunks)
	}
	cmd.Printf("\nTotal: %d chunks stored, %d records in store\n", report.TotalChunks, report.StoreCount)

	if failed := report.Failed(); len(failed) == len(report.Documents) {
		return errors.New("every document failed to ingest")
	}
	return nil
}
