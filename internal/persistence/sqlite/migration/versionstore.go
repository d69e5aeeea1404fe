package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// VersionStore reads and writes the persisted schema version marker. The
// marker lives in a dedicated single-row table; reads validate that exactly
// zero or one row exists and treat anything else as corruption.
type VersionStore struct {
	db *sql.DB
}

// NewVersionStore creates a version store backed by the given database.
func NewVersionStore(db *sql.DB) *VersionStore {
	return &VersionStore{db: db}
}

// Ensure creates the version marker table when it does not yet exist. A fresh
// table carries no row, which reads as the baseline version.
func (s *VersionStore) Ensure(ctx context.Context) error {
	createTableSQL := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		);
	`

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("%w: create schema_version table: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Current returns the persisted version marker, or Baseline when no step has
// ever committed.
func (s *VersionStore) Current(ctx context.Context) (Version, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return Baseline, fmt.Errorf("%w: read schema_version: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	found := false
	version := Baseline

	for rows.Next() {
		if found {
			return Baseline, fmt.Errorf("%w: multiple rows in schema_version", ErrCorruptMarker)
		}

		var value int64
		if err := rows.Scan(&value); err != nil {
			return Baseline, fmt.Errorf("%w: scan schema_version row: %v", ErrCorruptMarker, err)
		}
		if value < 0 {
			return Baseline, fmt.Errorf("%w: negative version %d", ErrCorruptMarker, value)
		}

		version = Version(value)
		found = true
	}

	if err := rows.Err(); err != nil {
		return Baseline, fmt.Errorf("%w: iterate schema_version: %v", ErrStoreUnavailable, err)
	}

	return version, nil
}

// Set writes the version marker using the caller's open transaction. The
// write becomes visible only when that transaction commits, which couples the
// marker to the step's own mutations.
func (s *VersionStore) Set(ctx context.Context, tx *sql.Tx, v Version) error {
	result, err := tx.ExecContext(ctx, `UPDATE schema_version SET version = ?`, int64(v))
	if err != nil {
		return fmt.Errorf("update schema_version: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update schema_version: %w", err)
	}

	if affected == 0 {
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, int64(v)); err != nil {
			return fmt.Errorf("insert schema_version: %w", err)
		}
	}

	return nil
}
