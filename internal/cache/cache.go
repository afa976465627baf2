// Package cache persists per-document generation results so unchanged
// documents are skipped on subsequent runs.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one cached generation result.
type Record struct {
	Source     string // source path relative to the source root
	Checksum   string // content + configuration signature
	Output     string // generated file path relative to the output root
	Identifier string // entry function name
	SessionID  string // generation session that produced the output
	UpdatedAt  time.Time
}

// Store is a SQLite-backed generation cache.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and initializes) the cache database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		source TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		output TEXT NOT NULL,
		identifier TEXT NOT NULL,
		session_id TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_checksum ON documents(checksum);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Lookup returns the cached record for source when its checksum matches.
// ok is false on a miss or a stale checksum.
func (s *Store) Lookup(ctx context.Context, source, checksum string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT source, checksum, output, identifier, session_id, updated_at FROM documents WHERE source = ?",
		source,
	)

	var rec Record
	var updated int64
	err := row.Scan(&rec.Source, &rec.Checksum, &rec.Output, &rec.Identifier, &rec.SessionID, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("query document: %w", err)
	}
	if rec.Checksum != checksum {
		return Record{}, false, nil
	}
	rec.UpdatedAt = time.Unix(updated, 0)
	return rec, true, nil
}

// Put upserts a generation record.
func (s *Store) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (source, checksum, output, identifier, session_id, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
		   checksum = excluded.checksum,
		   output = excluded.output,
		   identifier = excluded.identifier,
		   session_id = excluded.session_id,
		   updated_at = excluded.updated_at`,
		rec.Source, rec.Checksum, rec.Output, rec.Identifier, rec.SessionID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Purge removes cached records whose source is not in keep. Returns the
// number of removed records.
func (s *Store) Purge(ctx context.Context, keep map[string]bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, "SELECT source FROM documents")
	if err != nil {
		return 0, fmt.Errorf("list documents: %w", err)
	}
	var stale []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan document: %w", err)
		}
		if !keep[src] {
			stale = append(stale, src)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	_ = rows.Close()

	for _, src := range stale {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE source = ?", src); err != nil {
			return 0, fmt.Errorf("delete document %s: %w", src, err)
		}
	}
	return len(stale), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
