// Package history records completed resolutions in a local sqlite
// database. The history is informational only; nothing reads it back
// into the resolution path.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"magpie/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS resolutions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	identity    TEXT NOT NULL,
	items       INTEGER NOT NULL,
	resolved_at TEXT NOT NULL
);
`

// Store is a sqlite-backed resolution log.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one resolution to the log.
func (s *Store) Record(e media.HistoryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO resolutions (source, kind, identity, items, resolved_at) VALUES (?, ?, ?, ?, ?)`,
		e.Source, e.Kind, e.Identity, e.Items, e.ResolvedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording resolution: %w", err)
	}
	return nil
}

// Recent returns the n most recent resolutions, newest first.
func (s *Store) Recent(n int) ([]media.HistoryEntry, error) {
	rows, err := s.db.Query(
		`SELECT source, kind, identity, items, resolved_at FROM resolutions ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var e media.HistoryEntry
		var ts string
		if err := rows.Scan(&e.Source, &e.Kind, &e.Identity, &e.Items, &ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			e.ResolvedAt = parsed
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
