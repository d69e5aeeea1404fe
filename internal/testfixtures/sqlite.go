package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/WatchBeam/clock"

	"github.com/example/assetdb/internal/persistence"
	"github.com/example/assetdb/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// storage instance for integration-style persistence tests.
type SQLiteHarness struct {
	Storage *sqlite.Storage
	Tokens  persistence.TokenRepository
	Cache   persistence.CacheRepository
	Clock   *clock.MockClock

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary database file
// that is migrated automatically. A cleanup callback is registered with the
// provided testing.TB, so calling Close is optional.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "assetdb.sqlite")

	mockClock := clock.NewMockClock()
	storage, err := sqlite.Open(sqlite.DefaultConfig(path), mockClock)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if _, err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage: storage,
		Tokens:  storage,
		Cache:   storage,
		Clock:   mockClock,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)

	return harness
}
