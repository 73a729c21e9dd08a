// Package sqlite stores raw corpus documents in a SQLite database so a
// corpus can be imported once and queried from many processes. Only
// document text is kept; no term statistics are ever written.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/quest/pkg/quest/internalerr"
)

// Store is a SQLite-backed corpus. It implements corpus.Loader.
type Store struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a corpus database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL,
	imported_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Put inserts or replaces a document.
func (s *Store) Put(ctx context.Context, name, body string) error {
	if name == "" {
		return fmt.Errorf("%w: document name is required", internalerr.ErrInvalidInput)
	}

	const stmt = `
INSERT INTO documents (name, body, imported_at)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	body=excluded.body,
	imported_at=excluded.imported_at;
`
	_, err := s.db.ExecContext(ctx, stmt, name, body, time.Now().UTC().Format(time.RFC3339))
	return err
}

// PutAll writes every document in one transaction.
func (s *Store) PutAll(ctx context.Context, docs map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO documents (name, body, imported_at)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	body=excluded.body,
	imported_at=excluded.imported_at;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for name, body := range docs {
		if name == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, name, body, now); err != nil {
			return fmt.Errorf("put %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// Get returns a single document's text.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name=?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: document %q", internalerr.ErrNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name=?`, name)
	return err
}

// Names lists document names in lexical order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM documents ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Load implements corpus.Loader.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, body FROM documents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make(map[string]string)
	for rows.Next() {
		var name, body string
		if err := rows.Scan(&name, &body); err != nil {
			return nil, err
		}
		docs[name] = body
	}
	return docs, rows.Err()
}
