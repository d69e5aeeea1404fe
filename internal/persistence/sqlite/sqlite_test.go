package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/WatchBeam/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/assetdb/internal/persistence/sqlite/migration"
)

func openTestStorage(t *testing.T) (*Storage, *clock.MockClock) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "assetdb.sqlite")
	mockClock := clock.NewMockClock()

	storage, err := Open(DefaultConfig(path), mockClock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	_, err = storage.Migrate(context.Background())
	require.NoError(t, err)

	return storage, mockClock
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := Open(Config{}, clock.NewMockClock())
	require.Error(t, err)
}

func TestStorage_MigrateBringsSchemaToLatest(t *testing.T) {
	storage, _ := openTestStorage(t)
	ctx := context.Background()

	version, err := storage.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migration.Version(3), version)

	// A second pass is a no-op.
	result, err := storage.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, migration.OutcomeUpToDate, result.Outcome)
}

func TestStorage_Ping(t *testing.T) {
	storage, _ := openTestStorage(t)
	require.NoError(t, storage.Ping(context.Background()))
}

func TestStorage_WithTransaction(t *testing.T) {
	storage, _ := openTestStorage(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := storage.WithTransaction(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO general_cache (key, value, last_queried_ts) VALUES ('tx', 'committed', 0)`)
			return err
		})
		require.NoError(t, err)

		values, err := storage.CacheValues(ctx, "tx")
		require.NoError(t, err)
		assert.Equal(t, []string{"committed"}, values)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("abort")
		err := storage.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO general_cache (key, value, last_queried_ts) VALUES ('tx', 'aborted', 0)`); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		values, err := storage.CacheValues(ctx, "tx")
		require.NoError(t, err)
		assert.NotContains(t, values, "aborted")
	})
}
