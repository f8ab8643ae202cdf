// Package sqlite provides a SQLite-backed vector store. Embeddings are held
// as little-endian float32 BLOBs; similarity queries do an exhaustive cosine
// scan in Go, which stays fast for a guideline corpus of tens of documents.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veridia-labs/tirads-cli/internal/adapters/driven/vectorstore/sqlite/migrations"
	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a vector store at the specified data directory.
// If dataDir is empty, defaults to ~/.tirads/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tirads", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Add inserts records in one transaction. Re-adding an existing id upserts,
// so repeated ingestion of the same corpus converges instead of duplicating.
func (s *Store) Add(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, doc_id, page, chunk_id, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			doc_id = excluded.doc_id,
			page = excluded.page,
			chunk_id = excluded.chunk_id,
			content = excluded.content,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("%w: record id is empty", domain.ErrInvalidInput)
		}
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("%w: record %s has no embedding", domain.ErrInvalidInput, rec.ID)
		}

		blob := float32SliceToBytes(rec.Embedding)
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Metadata.DocID, rec.Metadata.Page,
			rec.Metadata.ChunkID, rec.Content, blob); err != nil {
			return fmt.Errorf("saving chunk %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// scored pairs a row with its query distance during the scan.
type scored struct {
	id       string
	content  string
	meta     domain.ChunkMetadata
	distance float64
}

// Query scans every stored embedding, computes cosine distance and returns
// the k nearest rows ascending.
func (s *Store) Query(ctx context.Context, embedding []float32, k int, filter driven.QueryFilter) (*domain.QueryResult, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: query embedding is empty", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return &domain.QueryResult{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, page, chunk_id, content, embedding FROM chunks
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var matches []scored
	for rows.Next() {
		var sc scored
		var blob []byte
		if err := rows.Scan(&sc.id, &sc.meta.DocID, &sc.meta.Page, &sc.meta.ChunkID,
			&sc.content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		if !matchesFilter(sc.meta, filter) {
			continue
		}

		stored := bytesToFloat32Slice(blob)
		if len(stored) != len(embedding) {
			continue // Dimension mismatch, e.g. model changed between runs
		}

		sc.distance = cosineDistance(embedding, stored)
		matches = append(matches, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	result := &domain.QueryResult{
		Documents: make([]string, len(matches)),
		Metadatas: make([]domain.ChunkMetadata, len(matches)),
		Distances: make([]float64, len(matches)),
		IDs:       make([]string, len(matches)),
	}
	for i, m := range matches {
		result.Documents[i] = m.content
		result.Metadatas[i] = m.meta
		result.Distances[i] = m.distance
		result.IDs[i] = m.id
	}
	return result, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// DeleteCollection removes all stored records.
func (s *Store) DeleteCollection(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// IsReady reports whether the store holds at least one record.
func (s *Store) IsReady(ctx context.Context) bool {
	count, err := s.Count(ctx)
	if err != nil {
		return false
	}
	return count > 0
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// matchesFilter reports whether the metadata satisfies every filter pair.
func matchesFilter(meta domain.ChunkMetadata, filter driven.QueryFilter) bool {
	for key, want := range filter {
		switch key {
		case "doc_id":
			if meta.DocID != want {
				return false
			}
		case "page":
			if strconv.Itoa(meta.Page) != want {
				return false
			}
		case "chunk_id":
			if meta.ChunkID != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// cosineDistance returns 1 minus the cosine similarity of a and b. A zero
// vector on either side yields the maximum distance.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
