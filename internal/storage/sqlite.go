package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/smileynet/addressbook/internal/contact"
)

// Compile-time check: SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists the book to a single SQLite table. Every Save
// replaces the table contents in one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

const contactsSchema = `CREATE TABLE IF NOT EXISTS contacts (
	position INTEGER NOT NULL,
	name     TEXT PRIMARY KEY,
	phones   BLOB NOT NULL,
	birthday TEXT
)`

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	o := applyOptions(opts)
	if path == "" {
		path = "addressbook.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("storage: creating directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	if _, err := db.Exec(contactsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create contacts table: %w", err)
	}
	return &SQLiteStore{db: db, path: path, log: o.log}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Load reads every row in position order.
func (s *SQLiteStore) Load() (*contact.Book, error) {
	rows, err := s.db.Query(`SELECT name, phones, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("storage: select contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var doc document
	for rows.Next() {
		var (
			e        entry
			phones   []byte
			birthday sql.NullString
		)
		if err := rows.Scan(&e.Name, &phones, &birthday); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		if err := json.Unmarshal(phones, &e.Phones); err != nil {
			return nil, fmt.Errorf("storage: decode phones for %q: %w", e.Name, err)
		}
		e.Birthday = birthday.String
		doc.Contacts = append(doc.Contacts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate contacts: %w", err)
	}

	b, err := restore(doc)
	if err != nil {
		return nil, fmt.Errorf("storage: loading %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("contacts", b.Len()).Msg("contacts loaded")
	return b, nil
}

// Save rewrites the table from b. On failure the previous contents remain.
func (s *SQLiteStore) Save(b *contact.Book) (retErr error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec(`DELETE FROM contacts`); err != nil {
		return fmt.Errorf("storage: clear contacts: %w", err)
	}
	for i, e := range snapshot(b).Contacts {
		phones, err := json.Marshal(e.Phones)
		if err != nil {
			return fmt.Errorf("storage: encode phones for %q: %w", e.Name, err)
		}
		birthday := sql.NullString{String: e.Birthday, Valid: e.Birthday != ""}
		if _, err := tx.Exec(`INSERT INTO contacts(position, name, phones, birthday) VALUES(?,?,?,?)`,
			i, e.Name, phones, birthday); err != nil {
			return fmt.Errorf("storage: insert %q: %w", e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	s.log.Debug().Str("path", s.path).Int("contacts", b.Len()).Msg("contacts saved")
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
