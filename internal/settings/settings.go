package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/snapgen/internal/migrations"
)

// Keys of every persisted preference
const (
	KeyActiveTab          = "activeTab"
	KeyStringLength       = "stringLength"
	KeyStringCount        = "stringCount"
	KeyCharTypes          = "charTypes"
	KeyWordCount          = "wordCount"
	KeyCapitalizeWords    = "capitalizeWords"
	KeySeparateWithDashes = "separateWithDashes"
	KeyAddDigit           = "addDigit"
)

// AllKeys lists the key space in display order
var AllKeys = []string{
	KeyActiveTab,
	KeyStringLength,
	KeyStringCount,
	KeyCharTypes,
	KeyWordCount,
	KeyCapitalizeWords,
	KeySeparateWithDashes,
	KeyAddDigit,
}

// KV is a flat string key/value store. Load never fails on an absent key.
type KV interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// Store persists settings in the SQLite settings table
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the settings database
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to settings database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the stored value for key. Read errors are reported as absent.
func (s *Store) Load(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Save upserts key
func (s *Store) Save(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// All returns every stored key/value pair
func (s *Store) All() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Reset deletes every stored preference
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM settings"); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Memory is a KV that lives for the process only
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	// FailSaves makes every Save return ErrReadOnly
	FailSaves bool
}

// ErrReadOnly is returned by a Memory store configured to reject writes
var ErrReadOnly = errors.New("settings store is read-only")

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Load implements KV
func (m *Memory) Load(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Save implements KV
func (m *Memory) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return ErrReadOnly
	}
	m.values[key] = value
	return nil
}
