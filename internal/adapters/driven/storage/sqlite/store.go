// Package sqlite provides a SQLite-backed chunk store.
//
// Embeddings are stored as little-endian float32 blobs and similarity
// search is an exhaustive scan scored in Go. That keeps the store free
// of native vector extensions at the cost of linear search, which is
// fine for a local corpus of abstract chunks.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/candela-labs/scholar-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
)

var _ driven.ChunkStore = (*Store)(nil)

// Store is a SQLite-backed chunk store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.scholar/data/chunks.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scholar", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chunks.db")

	// WAL mode for better concurrency
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

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert persists one embedded chunk. Re-inserting the same ID
// overwrites the previous row, so retried ingestion batches converge.
func (s *Store) Insert(ctx context.Context, chunk domain.Chunk) error {
	authorsJSON, err := json.Marshal(chunk.Authors)
	if err != nil {
		return fmt.Errorf("marshalling authors: %w", err)
	}

	categoriesJSON, err := json.Marshal(chunk.Categories)
	if err != nil {
		return fmt.Errorf("marshalling categories: %w", err)
	}

	embeddingBlob := float32SliceToBytes(chunk.Embedding)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, arxiv_id, title, authors, published, categories, chunk_text, chunk_index, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			arxiv_id = excluded.arxiv_id,
			title = excluded.title,
			authors = excluded.authors,
			published = excluded.published,
			categories = excluded.categories,
			chunk_text = excluded.chunk_text,
			chunk_index = excluded.chunk_index,
			embedding = excluded.embedding
	`, chunk.ID, chunk.ArxivID, chunk.Title, string(authorsJSON),
		chunk.Published, string(categoriesJSON), chunk.Text, chunk.Position, embeddingBlob)

	if err != nil {
		return &domain.BackendError{Backend: "sqlite", Op: "insert", Err: err}
	}
	return nil
}

// Search scans all stored chunks, scores them against the query vector
// in Go and returns the top matches by descending score. numCandidates
// is ignored; the scan is already exhaustive.
func (s *Store) Search(ctx context.Context, vector []float32, numCandidates, limit int) ([]domain.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT arxiv_id, title, chunk_text, chunk_index, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, &domain.BackendError{Backend: "sqlite", Op: "search", Err: err}
	}
	defer rows.Close()

	var matches []domain.Match //nolint:prealloc // size unknown from query
	for rows.Next() {
		var match domain.Match
		var embeddingBlob []byte
		if err := rows.Scan(&match.ArxivID, &match.Title, &match.Text, &match.Position, &embeddingBlob); err != nil {
			return nil, &domain.BackendError{Backend: "sqlite", Op: "search", Err: fmt.Errorf("scanning chunk: %w", err)}
		}

		match.Score = similarity(vector, bytesToFloat32Slice(embeddingBlob))
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.BackendError{Backend: "sqlite", Op: "search", Err: fmt.Errorf("iterating chunks: %w", err)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, &domain.BackendError{Backend: "sqlite", Op: "count", Err: err}
	}
	return count, nil
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
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

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
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

// similarity maps cosine similarity into [0,1] as (1+cos)/2, matching
// the score convention of the other stores.
func similarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (1 + cos) / 2
}
