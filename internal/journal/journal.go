package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/kurator/kurator/internal/config"
	"github.com/kurator/kurator/internal/migrations"
	"github.com/kurator/kurator/internal/types"
)

// DefaultLimit is the number of entries listed when no limit is given
const DefaultLimit = 50

const timestampLayout = "2006-01-02 15:04:05.000"

// Manager stores one row per API call in sqlite
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the journal database and migrates it
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	// sqlite allows one writer; handlers may record concurrently
	db.SetMaxOpenConns(1)

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record inserts one entry
func (m *Manager) Record(entry types.JournalEntry) error {
	timestamp := entry.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var errorMsg sql.NullString
	if entry.Error != "" {
		errorMsg = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err := m.db.Exec(`
		INSERT INTO journal (
			timestamp, request_id, operation, method, path, status_code, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		timestamp.Local().Format(timestampLayout),
		entry.RequestID,
		entry.Operation,
		entry.Method,
		entry.Path,
		entry.StatusCode,
		entry.DurationMs,
		errorMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	return nil
}

// List returns the latest entries, newest first
func (m *Manager) List(limit int) ([]types.JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, request_id, operation, method, path, status_code, duration_ms, error
		FROM journal
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Failures returns the latest entries that carry an error
func (m *Manager) Failures(limit int) ([]types.JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, request_id, operation, method, path, status_code, duration_ms, error
		FROM journal
		WHERE error IS NOT NULL
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal failures: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.JournalEntry, error) {
	var entries []types.JournalEntry

	for rows.Next() {
		var entry types.JournalEntry
		var timestamp string
		var errorMsg sql.NullString

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&entry.RequestID,
			&entry.Operation,
			&entry.Method,
			&entry.Path,
			&entry.StatusCode,
			&entry.DurationMs,
			&errorMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		parsed, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			// Try RFC3339 format as fallback
			parsed, err = time.Parse(time.RFC3339, timestamp)
			if err != nil {
				parsed = time.Time{}
			}
		}
		entry.Timestamp = parsed
		entry.Error = errorMsg.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries
func (m *Manager) Count() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM journal").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get journal count: %w", err)
	}
	return count, nil
}

// Clear removes every entry
func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM journal")
	if err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
