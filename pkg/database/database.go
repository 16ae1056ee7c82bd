package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Storage keys. Each record collection is serialized as a whole under its own
// versioned key so a future schema change can be detected and migrated
// without touching the other collection.
const (
	LibraryKey     = "mybooks_library_v1"
	CollectionsKey = "mybooks_collections_v1"
)

// Backend is the key-addressed store every persisted collection lives in.
// Put either commits the full new value or leaves the prior value intact.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}

// SQLiteBackend persists values in a single local SQLite file.
type SQLiteBackend struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath.
func Open(dbPath string) (*SQLiteBackend, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS storage (
        key   TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Get(key string) (string, bool, error) {
	var value string
	err := b.db.QueryRow(`SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Put writes the value in a single statement; SQLite runs it in an implicit
// transaction, so a failed write leaves the previous value untouched.
func (b *SQLiteBackend) Put(key, value string) error {
	_, err := b.db.Exec(`
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
