package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driving"
	"github.com/veridia-labs/tirads-cli/internal/logger"
	"github.com/veridia-labs/tirads-cli/internal/postprocessors/chunker"
)

// Corpora are small (tens of documents) but single pages of scanned
// guideline PDFs can be heavy, so the pipeline works one page at a time and
// nudges the collector on a fixed cadence.
const (
	progressInterval = 50
	gcInterval       = 10
)

// IngestService builds the vector store from a guideline corpus directory.
// Documents are processed sequentially; a failing document is recorded and
// skipped, never aborting the batch.
type IngestService struct {
	extractors []driven.PageExtractor
	tokenizer  chunker.Tokenizer
	embedder   driven.EmbeddingService
	store      driven.VectorStore
}

var _ driving.Ingestor = (*IngestService)(nil)

// NewIngestService creates an ingestion service. Extractors are tried in
// order; the first whose Supports accepts a path handles that file.
func NewIngestService(extractors []driven.PageExtractor, tok chunker.Tokenizer, embedder driven.EmbeddingService, store driven.VectorStore) *IngestService {
	return &IngestService{
		extractors: extractors,
		tokenizer:  tok,
		embedder:   embedder,
		store:      store,
	}
}

// IngestDir processes every supported file in dir in lexical order.
func (s *IngestService) IngestDir(ctx context.Context, dir string, opts driving.IngestOptions) (*driving.IngestReport, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus directory: %s is not a directory", dir)
	}

	paths, err := s.corpusFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported corpus files found in %s", dir)
	}

	splitter, err := s.splitter(opts)
	if err != nil {
		return nil, err
	}

	report := &driving.IngestReport{RunID: uuid.NewString()}
	logger.Section("Ingestion run %s: %d files", report.RunID, len(paths))

	if opts.Reset {
		logger.Info("Resetting vector store")
		if err := s.store.DeleteCollection(ctx); err != nil {
			return nil, fmt.Errorf("reset collection: %w", err)
		}
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docReport := s.ingestDocument(ctx, path, splitter)
		report.Documents = append(report.Documents, docReport)
		report.TotalChunks += docReport.Chunks

		if docReport.Err != nil {
			logger.Warn("Document %s failed: %v", docReport.DocID, docReport.Err)
		} else {
			logger.Info("Document %s: %d pages, %d chunks", docReport.DocID, docReport.Pages, docReport.Chunks)
		}

		runtime.GC()
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	report.StoreCount = count

	logger.Section("Ingestion complete: %d chunks stored, %d records total", report.TotalChunks, count)
	return report, nil
}

// ingestDocument runs the page pipeline for one file. Any failure is folded
// into the report entry.
func (s *IngestService) ingestDocument(ctx context.Context, path string, splitter *chunker.Splitter) driving.DocumentReport {
	docID := filepath.Base(path)
	report := driving.DocumentReport{DocID: docID}

	extractor := s.extractorFor(path)
	if extractor == nil {
		report.Err = fmt.Errorf("no extractor supports %s", docID)
		return report
	}

	totalPages, err := extractor.PageCount(ctx, path)
	if err != nil {
		report.Err = fmt.Errorf("page count: %w", err)
		return report
	}
	logger.Debug("Document %s: %d pages", docID, totalPages)

	for page := 1; page <= totalPages; page++ {
		if err := ctx.Err(); err != nil {
			report.Err = err
			return report
		}

		text, err := extractor.ExtractPage(ctx, path, page)
		if err != nil {
			report.Err = fmt.Errorf("extract page %d: %w", page, err)
			return report
		}
		report.Pages++

		added, err := s.ingestPage(ctx, docID, page, text, splitter)
		if err != nil {
			report.Err = fmt.Errorf("page %d: %w", page, err)
			return report
		}
		report.Chunks += added

		if page%progressInterval == 0 || page == totalPages {
			logger.Info("  Progress %s: %d/%d pages, %d chunks stored", docID, page, totalPages, report.Chunks)
		}
		if page%gcInterval == 0 {
			runtime.GC()
		}
	}

	if report.Chunks == 0 {
		report.Err = domain.ErrEmptyDocument
	}
	return report
}

// ingestPage cleans, chunks, embeds and stores one page of text. Blank pages
// are skipped.
func (s *IngestService) ingestPage(ctx context.Context, docID string, page int, text string, splitter *chunker.Splitter) (int, error) {
	cleaned := cleanText(text)
	if cleaned == "" {
		return 0, nil
	}

	spans := splitter.Split(cleaned)
	if len(spans) == 0 {
		return 0, nil
	}

	chunks := make([]domain.Chunk, len(spans))
	texts := make([]string, len(spans))
	for i, content := range spans {
		chunks[i] = domain.Chunk{
			ID:      domain.ChunkID(docID, page, i),
			DocID:   docID,
			Page:    page,
			Content: content,
		}
		texts[i] = content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(chunks), len(embeddings))
	}

	records := make([]domain.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = domain.VectorRecord{
			ID:        chunk.ID,
			Embedding: embeddings[i],
			Content:   chunk.Content,
			Metadata: domain.ChunkMetadata{
				DocID:   chunk.DocID,
				Page:    chunk.Page,
				ChunkID: chunk.ID,
			},
		}
	}

	if err := s.store.Add(ctx, records); err != nil {
		return 0, fmt.Errorf("store %d records: %w", len(records), err)
	}

	return len(records), nil
}

// corpusFiles lists the supported files in dir, sorted for deterministic
// processing order.
func (s *IngestService) corpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if s.extractorFor(path) != nil {
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// extractorFor returns the first extractor that supports path, or nil.
func (s *IngestService) extractorFor(path string) driven.PageExtractor {
	for _, e := range s.extractors {
		if e.Supports(path) {
			return e
		}
	}
	return nil
}

// splitter builds the run's splitter, applying option overrides over the
// defaults.
func (s *IngestService) splitter(opts driving.IngestOptions) (*chunker.Splitter, error) {
	var chunkerOpts []chunker.Option
	if opts.ChunkSize > 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithChunkSize(opts.ChunkSize))
	}
	if opts.ChunkOverlap > 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithOverlap(opts.ChunkOverlap))
	}
	return chunker.New(s.tokenizer, chunkerOpts...)
}

// cleanText normalises extracted page text: every line is trimmed and blank
// lines are dropped.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
