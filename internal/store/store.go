package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// formatVersion is the user_version schema.sql stamps on a store.
const formatVersion = 1

// ErrNotStore is returned for SQLite files that were not written by a store.
var ErrNotStore = errors.New("not a workday record store")

// Store holds one ordered set of responsibility records.
type Store struct {
	db *sql.DB
}

// Open opens the store at path for writing, creating the file and its
// tables when needed. A SQLite file that already belongs to something else
// is refused with ErrNotStore rather than extended.
func Open(path string) (*Store, error) {
	db, err := connect(path, "rwc")
	if err != nil {
		return nil, err
	}

	version, err := userVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version != 0 && version != formatVersion {
		db.Close()
		return nil, fmt.Errorf("%s: %w (format version %d)", path, ErrNotStore, version)
	}
	if version == 0 {
		if n, err := tableCount(db); err != nil {
			db.Close()
			return nil, err
		} else if n > 0 {
			db.Close()
			return nil, fmt.Errorf("%s: %w (has unrelated tables)", path, ErrNotStore)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing store without modifying the file: no
// schema is created and no pragma is persisted.
func OpenReadOnly(path string) (*Store, error) {
	db, err := connect(path, "ro")
	if err != nil {
		return nil, err
	}

	version, err := userVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version != formatVersion {
		db.Close()
		return nil, fmt.Errorf("%s: %w (format version %d)", path, ErrNotStore, version)
	}
	return &Store{db: db}, nil
}

// uriEscaper escapes the characters SQLite URI filenames give meaning to.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// connect opens path in the given SQLite URI mode. Foreign keys and the busy
// timeout are per-connection settings, so they travel in the DSN.
func connect(path, mode string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=%s&_foreign_keys=1&_busy_timeout=5000", uriEscaper.Replace(path), mode)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// One connection keeps the DSN settings and the transaction on the same
	// handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read format version: %w", err)
	}
	return version, nil
}

func tableCount(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&n); err != nil {
		return 0, fmt.Errorf("inspect tables: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
