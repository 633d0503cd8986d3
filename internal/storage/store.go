// Package storage persists cached model responses in a local SQLite file.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ResponseStore defines the interface for model-response cache persistence.
type ResponseStore interface {
	// GetResponse returns the cached raw response for hash, "" on miss.
	GetResponse(hash string) (string, error)
	// SetResponse stores the raw response under hash, replacing any
	// previous entry.
	SetResponse(hash, response string) error
	Close() error
}

// SQLiteStore implements ResponseStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed response store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// WAL mode and a busy timeout keep concurrent readers from failing.
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS response_cache (
		request_hash TEXT PRIMARY KEY,
		response TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create response_cache table: %w", err)
	}
	return nil
}

// GetResponse implements ResponseStore.
func (s *SQLiteStore) GetResponse(hash string) (string, error) {
	var response string
	err := s.db.QueryRow(
		"SELECT response FROM response_cache WHERE request_hash = ?", hash,
	).Scan(&response)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query response cache: %w", err)
	}
	return response, nil
}

// SetResponse implements ResponseStore.
func (s *SQLiteStore) SetResponse(hash, response string) error {
	_, err := s.db.Exec(
		`INSERT INTO response_cache (request_hash, response, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(request_hash) DO UPDATE SET response = excluded.response, created_at = excluded.created_at`,
		hash, response, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
