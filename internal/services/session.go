package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	uuid "github.com/google/uuid"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/logger"
	"github.com/easel-agent/cli/internal/storage"
)

// SessionService records a drawing session twice: an append-only JSONL
// transcript on disk and a mirrored copy in the SQLite history database.
// Storage failures are logged, never fatal, so recording problems cannot
// break a running session.
type SessionService struct {
	id      string
	file    *os.File
	path    string
	storage *storage.SQLiteStorage
}

// NewSessionService starts a new recorded session. storage may be nil, in
// which case only the JSONL transcript is written.
func NewSessionService(dir, model, profile string, store *storage.SQLiteStorage) (*SessionService, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	id := uuid.New().String()
	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("session_%s_%s.jsonl", now.Format("20060102_150405"), id[:8]))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}

	if store != nil {
		if err := store.CreateSession(context.Background(), id, model, profile, now); err != nil {
			logger.Warn("Failed to create session history row", "error", err)
		}
	}

	logger.Info("Started session", "id", id, "path", path)

	return &SessionService{
		id:      id,
		file:    file,
		path:    path,
		storage: store,
	}, nil
}

// SessionID returns the session's unique identifier
func (s *SessionService) SessionID() string {
	return s.id
}

// Path returns the JSONL transcript location
func (s *SessionService) Path() string {
	return s.path
}

// RecordPrompt appends the user's instruction
func (s *SessionService) RecordPrompt(ctx context.Context, text string) error {
	return s.record(ctx, &domain.SessionEntry{
		Time: time.Now(),
		Kind: domain.EntryKindPrompt,
		Text: text,
	})
}

// RecordResponse appends the interpreter's raw response
func (s *SessionService) RecordResponse(ctx context.Context, text string) error {
	return s.record(ctx, &domain.SessionEntry{
		Time: time.Now(),
		Kind: domain.EntryKindResponse,
		Text: text,
	})
}

// RecordAction appends one executed tool invocation with its result
func (s *SessionService) RecordAction(ctx context.Context, result *domain.ToolExecutionResult) error {
	return s.record(ctx, &domain.SessionEntry{
		Time:   time.Now(),
		Kind:   domain.EntryKindAction,
		Action: result,
	})
}

func (s *SessionService) record(ctx context.Context, entry *domain.SessionEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal session entry: %w", err)
	}

	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write session entry: %w", err)
	}

	if s.storage != nil {
		if err := s.storage.AppendEntry(ctx, s.id, entry); err != nil {
			logger.Warn("Failed to mirror session entry", "error", err)
		}
	}

	return nil
}

// Close stamps the session end and closes the transcript
func (s *SessionService) Close() error {
	if s.storage != nil {
		if err := s.storage.FinishSession(context.Background(), s.id, time.Now()); err != nil {
			logger.Warn("Failed to finish session history row", "error", err)
		}
	}

	logger.Info("Closed session", "id", s.id)
	return s.file.Close()
}
