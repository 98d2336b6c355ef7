package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "cache.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestNewSQLiteStorage_RejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestGetCacheRecord_Empty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	rec, err := store.GetCacheRecord(context.Background())
	require.NoError(t, err)
	assert.False(t, rec.HasWeek())
	assert.True(t, rec.LastLoadTime.IsZero())
	assert.Empty(t, rec.Fingerprint)
}

func TestCommitLoad_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	loadedAt := time.Date(2025, 3, 4, 12, 1, 30, 0, time.UTC)
	require.NoError(t, store.CommitLoad(ctx, model.LoadRecord{
		Week:        6,
		Fingerprint: "tnt2ex",
		LoadedAt:    loadedAt,
		Courses:     12,
		Reason:      "scan",
	}))

	rec, err := store.GetCacheRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.CachedWeek)
	assert.Equal(t, "tnt2ex", rec.Fingerprint)
	assert.True(t, loadedAt.Equal(rec.LastLoadTime))

	value, err := store.getValue(ctx, KeyCurrentWeek)
	require.NoError(t, err)
	assert.Equal(t, "6", value)

	loads, err := store.ListLoads(ctx, 10)
	require.NoError(t, err)
	require.Len(t, loads, 1)
	assert.NotEmpty(t, loads[0].ID, "an ID is generated")
	assert.Equal(t, 12, loads[0].Courses)
	assert.Equal(t, "scan", loads[0].Reason)
	assert.True(t, loadedAt.Equal(loads[0].LoadedAt))
}

func TestCommitLoad_Overwrites(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.CommitLoad(ctx, model.LoadRecord{Week: 5, Fingerprint: "a", LoadedAt: base}))
	require.NoError(t, store.CommitLoad(ctx, model.LoadRecord{Week: 6, Fingerprint: "b", LoadedAt: base.Add(time.Hour)}))

	rec, err := store.GetCacheRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.CachedWeek)
	assert.Equal(t, "b", rec.Fingerprint)

	loads, err := store.ListLoads(ctx, 0)
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, 6, loads[0].Week, "newest first")

	limited, err := store.ListLoads(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCommitLoad_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name string
		rec  model.LoadRecord
	}{
		{name: "zero week", rec: model.LoadRecord{Fingerprint: "a", LoadedAt: time.Now()}},
		{name: "missing fingerprint", rec: model.LoadRecord{Week: 1, LoadedAt: time.Now()}},
		{name: "missing time", rec: model.LoadRecord{Week: 1, Fingerprint: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CommitLoad(ctx, tt.rec)
			assert.ErrorIs(t, err, ErrInvalidLoadRecord)
		})
	}

	rec, err := store.GetCacheRecord(ctx)
	require.NoError(t, err)
	assert.False(t, rec.HasWeek(), "rejected loads leave no trace")
}

func TestTouchLastLoad(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.CommitLoad(ctx, model.LoadRecord{Week: 5, Fingerprint: "a", LoadedAt: base}))
	require.NoError(t, store.TouchLastLoad(ctx, base.Add(8*time.Hour)))

	rec, err := store.GetCacheRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.CachedWeek)
	assert.Equal(t, "a", rec.Fingerprint)
	assert.True(t, base.Add(8*time.Hour).Equal(rec.LastLoadTime))

	assert.ErrorIs(t, store.TouchLastLoad(ctx, time.Time{}), ErrInvalidLoadRecord)
}

func TestClearCache(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.CommitLoad(ctx, model.LoadRecord{Week: 5, Fingerprint: "a", LoadedAt: time.Now()}))
	require.NoError(t, store.ClearCache(ctx))

	rec, err := store.GetCacheRecord(ctx)
	require.NoError(t, err)
	assert.False(t, rec.HasWeek())

	_, err = store.getValue(ctx, KeyDataHash)
	assert.ErrorIs(t, err, common.ErrNotFound)

	loads, err := store.ListLoads(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, loads, 1, "history survives a cache clear")
}

func TestGetCacheRecord_Corrupted(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO cache_state (key, value) VALUES ('current_week', 'five')`)
	require.NoError(t, err)

	_, err = store.GetCacheRecord(ctx)
	assert.ErrorIs(t, err, common.ErrDatabaseCorrupted)
}
