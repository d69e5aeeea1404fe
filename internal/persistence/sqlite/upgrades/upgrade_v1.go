package upgrades

import (
	"context"
	"database/sql"
	"fmt"
)

// createAssetTables creates the primary token table. Protocol is nullable:
// NULL means unclassified, while detection passes write values such as "spam".
func createAssetTables(ctx context.Context, tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS evm_tokens (
			identifier TEXT NOT NULL PRIMARY KEY,
			chain INTEGER NOT NULL,
			address TEXT NOT NULL,
			name TEXT,
			symbol TEXT,
			decimals INTEGER,
			protocol TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_evm_tokens_protocol ON evm_tokens (protocol);`,
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create asset tables: %w", err)
		}
	}

	return nil
}
