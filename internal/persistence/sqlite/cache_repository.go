package sqlite

import (
	"context"
	"fmt"

	"github.com/example/assetdb/internal/persistence"
)

// AddCacheEntry records a key/value pair stamped with the current time.
// Existing pairs are left untouched, including their original timestamp.
func (s *Storage) AddCacheEntry(ctx context.Context, key, value string) error {
	if key == "" || value == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO general_cache (key, value, last_queried_ts) VALUES (?, ?, ?)`,
		key, value, s.clock.Now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite: add cache entry %s/%s: %w", key, value, err)
	}

	return nil
}

// HasCacheEntry reports whether the key/value pair exists and refreshes its
// last_queried_ts when it does.
func (s *Storage) HasCacheEntry(ctx context.Context, key, value string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE general_cache SET last_queried_ts = ? WHERE key = ? AND value = ?`,
		s.clock.Now().Unix(), key, value)
	if err != nil {
		return false, fmt.Errorf("sqlite: check cache entry %s/%s: %w", key, value, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: check cache entry %s/%s: %w", key, value, err)
	}

	return affected > 0, nil
}

// CacheValues returns every value recorded under the key, ordered by value.
func (s *Storage) CacheValues(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM general_cache WHERE key = ? ORDER BY value ASC`, key)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list cache values for %s: %w", key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("sqlite: scan cache value: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate cache values: %w", err)
	}

	return values, nil
}
