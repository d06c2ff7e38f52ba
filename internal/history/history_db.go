package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/snapgen/internal/migrations"
	"github.com/studiowebux/snapgen/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO generation_history (
			timestamp, kind, params, result_count, status, error, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var errMsg sql.NullString
	if entry.Error != "" {
		errMsg = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err := m.db.Exec(query,
		ts.Local().Format(timestampLayout),
		string(entry.Kind),
		entry.Params,
		entry.ResultCount,
		entry.Status,
		errMsg,
		entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Load returns the newest entries first. limit <= 0 returns everything.
func (m *Manager) Load(limit int) ([]Entry, error) {
	query := `
		SELECT id, timestamp, kind, params, result_count, status, error, duration_ms
		FROM generation_history
		ORDER BY timestamp DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// LoadKind returns entries for one form, newest first
func (m *Manager) LoadKind(kind types.TabID, limit int) ([]Entry, error) {
	query := `
		SELECT id, timestamp, kind, params, result_count, status, error, duration_ms
		FROM generation_history
		WHERE kind = ?
		ORDER BY timestamp DESC, id DESC
	`
	args := []interface{}{string(kind)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry

	for rows.Next() {
		var e Entry
		var timestamp string
		var kind string
		var errMsg sql.NullString

		err := rows.Scan(
			&e.ID,
			&timestamp,
			&kind,
			&e.Params,
			&e.ResultCount,
			&e.Status,
			&errMsg,
			&e.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		parsedTime, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			parsedTime, err = time.Parse(time.RFC3339, timestamp)
			if err != nil {
				parsedTime = time.Time{}
			}
		}

		e.Timestamp = parsedTime
		e.Kind = types.TabID(kind)
		e.Error = errMsg.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM generation_history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM generation_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM generation_history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
