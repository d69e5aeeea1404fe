package upgrades

import (
	"context"
	"database/sql"
	"fmt"
)

// createGeneralCache creates the generic key/value cache table. A key may map
// to many values; the composite primary key gives INSERT OR IGNORE its
// insert-if-absent semantics.
func createGeneralCache(ctx context.Context, tx *sql.Tx) error {
	stmt := `CREATE TABLE IF NOT EXISTS general_cache (
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		last_queried_ts INTEGER NOT NULL,
		PRIMARY KEY (key, value)
	);`

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create general_cache: %w", err)
	}

	return nil
}
