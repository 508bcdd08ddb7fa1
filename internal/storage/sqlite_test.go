package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/internal/domain"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")
	storage, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return storage
}

func TestSQLiteStorageSessionRoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, storage.CreateSession(ctx, "s-1", "google/gemini-2.0-flash", "default", started))

	entries := []domain.SessionEntry{
		{Time: started, Kind: domain.EntryKindPrompt, Text: "draw a red circle"},
		{Time: started.Add(time.Second), Kind: domain.EntryKindResponse, Text: "TOOL: select_color | {\"color\": \"red\"}"},
		{Time: started.Add(2 * time.Second), Kind: domain.EntryKindAction, Action: &domain.ToolExecutionResult{
			ToolName: "select_color",
			Success:  true,
		}},
	}
	for i := range entries {
		require.NoError(t, storage.AppendEntry(ctx, "s-1", &entries[i]))
	}

	loaded, err := storage.LoadSession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, domain.EntryKindPrompt, loaded[0].Kind)
	assert.Equal(t, "draw a red circle", loaded[0].Text)
	require.NotNil(t, loaded[2].Action)
	assert.Equal(t, "select_color", loaded[2].Action.ToolName)
	assert.True(t, loaded[2].Action.Success)
}

func TestSQLiteStorageListSessions(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, storage.CreateSession(ctx, "old", "m", "default", base.Add(-time.Hour)))
	require.NoError(t, storage.CreateSession(ctx, "new", "m", "default", base))

	entry := domain.SessionEntry{Time: base, Kind: domain.EntryKindPrompt, Text: "hi"}
	require.NoError(t, storage.AppendEntry(ctx, "new", &entry))
	require.NoError(t, storage.FinishSession(ctx, "new", base.Add(time.Minute)))

	sessions, err := storage.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// Newest first
	assert.Equal(t, "new", sessions[0].ID)
	assert.Equal(t, 1, sessions[0].EntryCount)
	assert.Equal(t, "old", sessions[1].ID)
	assert.Equal(t, 0, sessions[1].EntryCount)
}

func TestSQLiteStorageLoadUnknownSession(t *testing.T) {
	storage := newTestStorage(t)

	entries, err := storage.LoadSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteStorageHealth(t *testing.T) {
	storage := newTestStorage(t)
	assert.NoError(t, storage.Health(context.Background()))
}
