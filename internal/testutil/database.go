// Package testutil provides shared fakes and fixtures for classwatch tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/classwatch/internal/storage"
)

// SetupTestCache creates a migrated in-memory SQLite cache that is closed
// when the test ends.
func SetupTestCache(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return store
}
