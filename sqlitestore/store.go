// Package sqlitestore keeps the teller snapshot in a SQLite database.
//
// The database holds a single row with the JSON encoded snapshot, so it is
// interchangeable with the file store: the same bytes, the same checks on load.
package sqlitestore

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/teller"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS snapshot (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	version  INTEGER NOT NULL,
	saved_at INTEGER NOT NULL,
	body     BLOB NOT NULL
)`

// Store is a teller.Store backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ teller.Store = (*Store)(nil)

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	path = filepath.Clean(path)
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file name.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Load() (*teller.Snapshot, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM snapshot WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q is empty", teller.ErrNoSnapshot, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap, err := teller.DecodeSnapshot(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.path, err)
	}
	return snap, nil
}

// Save replaces the stored snapshot in a single statement.
func (s *Store) Save(snap *teller.Snapshot) error {
	var buf bytes.Buffer
	if err := teller.EncodeSnapshot(&buf, snap); err != nil {
		return err
	}
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO snapshot (id, version, saved_at, body) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET version = excluded.version, saved_at = excluded.saved_at, body = excluded.body`,
		snap.Version, savedAt.UnixMilli(), buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
