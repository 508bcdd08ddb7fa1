// Package storage keeps the session history in SQLite: one row per drawing
// session plus its ordered entries, so past sessions can be listed and
// replayed after the JSONL transcript files are gone.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/easel-agent/cli/internal/domain"
)

// SessionMetadata is the per-session summary row
type SessionMetadata struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Profile    string    `json:"profile"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	EntryCount int       `json:"entry_count"`
}

// SQLiteStorage persists drawing sessions in a SQLite database
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens (creating if needed) the session history database
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	storage := &SQLiteStorage{
		db:   db,
		path: path,
	}

	if err := storage.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		profile TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		entry_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS session_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		entry_data TEXT NOT NULL, -- JSON serialized SessionEntry
		sequence_number INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_session_entries_session_id ON session_entries(session_id);
	CREATE INDEX IF NOT EXISTS idx_session_entries_sequence ON session_entries(session_id, sequence_number);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateSession inserts the summary row for a new session
func (s *SQLiteStorage) CreateSession(ctx context.Context, id, model, profile string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, model, profile, started_at, entry_count)
		VALUES (?, ?, ?, ?, 0)
	`, id, model, profile, startedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// AppendEntry appends one entry to a session, bumping the entry count in the
// same transaction
func (s *SQLiteStorage) AppendEntry(ctx context.Context, sessionID string, entry *domain.SessionEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal session entry: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sequence_number), 0) + 1 FROM session_entries WHERE session_id = ?",
		sessionID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to compute sequence number: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_entries (session_id, entry_data, sequence_number, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, string(data), next, entry.Time)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE sessions SET entry_count = ? WHERE id = ?", next, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update entry count: %w", err)
	}

	return tx.Commit()
}

// FinishSession stamps the session's end time
func (s *SQLiteStorage) FinishSession(ctx context.Context, sessionID string, finishedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET finished_at = ? WHERE id = ?", finishedAt, sessionID)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	return nil
}

// ListSessions returns session summaries, newest first
func (s *SQLiteStorage) ListSessions(ctx context.Context, limit int) ([]SessionMetadata, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, profile, started_at, COALESCE(finished_at, started_at), entry_count
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []SessionMetadata
	for rows.Next() {
		var meta SessionMetadata
		if err := rows.Scan(&meta.ID, &meta.Model, &meta.Profile,
			&meta.StartedAt, &meta.FinishedAt, &meta.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, meta)
	}

	return sessions, rows.Err()
}

// LoadSession returns a session's entries in recorded order
func (s *SQLiteStorage) LoadSession(ctx context.Context, sessionID string) ([]domain.SessionEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_data
		FROM session_entries
		WHERE session_id = ?
		ORDER BY sequence_number ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.SessionEntry
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}

		var entry domain.SessionEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Health verifies the database connection
func (s *SQLiteStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
