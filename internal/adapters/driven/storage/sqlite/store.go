// Package sqlite provides the durable chunk store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// dbFileName is the chunk database file inside the data directory.
const dbFileName = "recall_memories.db"

// Store is the SQLite-backed chunk store. Rows are keyed by
// (source_id, chunk_index); an upsert replaces the whole row, so readers
// never observe text and embedding from two different writes.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (and if needed creates) the chunk database under dataDir.
// If dataDir is empty, defaults to ~/.recall/data. Schema creation is
// idempotent: opening an already migrated database is a no-op.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recall", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// WAL mode allows concurrent readers while ingestion writes.
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
		// Extract version number (e.g., "001_chunks.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
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

// Upsert inserts the chunk or replaces the existing row for its key.
// The ON CONFLICT clause replaces text and embedding in one statement, so
// the row is never half-written.
func (s *Store) Upsert(ctx context.Context, chunk domain.Chunk) error {
	if chunk.SourceID == "" || chunk.ChunkIndex < 0 {
		return domain.ErrInvalidInput
	}

	embJSON, err := encodeEmbedding(chunk.Embedding)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chunks (source_id, chunk_index, text, embedding, page_number, title)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id, chunk_index) DO UPDATE SET
			text = excluded.text,
			embedding = excluded.embedding,
			page_number = excluded.page_number,
			title = excluded.title
	`, chunk.SourceID, chunk.ChunkIndex, chunk.Text, embJSON,
		nullInt(chunk.PageNumber), nullString(chunk.Title))

	if err != nil {
		return fmt.Errorf("upserting chunk: %w", err)
	}
	return nil
}

// All returns a snapshot of every stored chunk. A row whose embedding fails
// to decode is skipped with a warning instead of failing the snapshot, so a
// single corrupt row cannot take retrieval down.
func (s *Store) All(ctx context.Context) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, chunk_index, text, embedding, page_number, title
		FROM chunks
		ORDER BY source_id, chunk_index
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			if errors.Is(err, domain.ErrCorruptEmbedding) {
				logger.Warn("Skipping chunk with corrupt embedding: %v", err)
				continue
			}
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// Sources lists ingested sources with chunk counts.
func (s *Store) Sources(ctx context.Context) ([]domain.SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, COUNT(*)
		FROM chunks
		GROUP BY source_id
		ORDER BY source_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.SourceInfo //nolint:prealloc // size unknown from query
	for rows.Next() {
		var info domain.SourceInfo
		if err := rows.Scan(&info.SourceID, &info.Chunks); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// DeleteSource removes every chunk of the source.
func (s *Store) DeleteSource(ctx context.Context, sourceID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE source_id = ?", sourceID)
	if err != nil {
		return 0, fmt.Errorf("deleting source: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chunks: %w", err)
	}
	return n, nil
}

// scanChunk scans a chunk from *sql.Rows, validating the stored embedding.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embJSON string
	var pageNumber sql.NullInt64
	var title sql.NullString

	if err := rows.Scan(&chunk.SourceID, &chunk.ChunkIndex, &chunk.Text,
		&embJSON, &pageNumber, &title); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	embedding, err := decodeEmbedding(embJSON)
	if err != nil {
		return nil, fmt.Errorf("chunk %s#%d: %w", chunk.SourceID, chunk.ChunkIndex, err)
	}
	chunk.Embedding = embedding

	if pageNumber.Valid {
		n := int(pageNumber.Int64)
		chunk.PageNumber = &n
	}
	chunk.Title = title.String

	return &chunk, nil
}

// encodeEmbedding serialises the vector as a JSON float array. JSON keeps
// the format portable, and encoding/json formats float32 values with their
// shortest exact decimal, so decode(encode(v)) is bit-for-bit v.
func encodeEmbedding(embedding []float32) (string, error) {
	if embedding == nil {
		embedding = []float32{}
	}
	data, err := json.Marshal(embedding)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeEmbedding parses a stored embedding, flagging malformed data as a
// corrupt row rather than coercing it to a zero vector.
func decodeEmbedding(embJSON string) ([]float32, error) {
	var embedding []float32
	if err := json.Unmarshal([]byte(embJSON), &embedding); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptEmbedding, err)
	}
	return embedding, nil
}

// nullInt converts an optional int to a nullable SQL value.
func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

// nullString converts an empty string to a nullable SQL value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
