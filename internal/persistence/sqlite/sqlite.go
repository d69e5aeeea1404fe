package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/WatchBeam/clock"
	_ "modernc.org/sqlite"

	"github.com/example/assetdb/internal/logging"
	"github.com/example/assetdb/internal/persistence/sqlite/migration"
	"github.com/example/assetdb/internal/persistence/sqlite/upgrades"
)

// Config holds SQLite-specific connection settings.
type Config struct {
	// DSN is the database file path or connection string.
	DSN string

	// BusyTimeout sets how long to wait for database locks.
	BusyTimeout time.Duration

	// JournalMode sets the SQLite journal mode (WAL, DELETE, TRUNCATE, MEMORY).
	JournalMode string

	// EnableForeignKeys enables foreign key constraint checking.
	EnableForeignKeys bool

	// MaxOpenConns limits the connection pool. The migration pass assumes a
	// single writer, so the default keeps one connection.
	MaxOpenConns int
}

// DefaultConfig returns connection settings suitable for a local database file.
func DefaultConfig(dsn string) Config {
	return Config{
		DSN:               dsn,
		BusyTimeout:       5 * time.Second,
		JournalMode:       "WAL",
		EnableForeignKeys: true,
		MaxOpenConns:      1,
	}
}

// Storage is the SQLite-backed persistence layer for the asset database.
type Storage struct {
	db    *sql.DB
	clock clock.Clock
}

// Open opens the database, applies the configured PRAGMA settings, and
// verifies connectivity. The clock stamps cache entries written through the
// repositories.
func Open(cfg Config, clk clock.Clock) (*Storage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite: DSN is required")
	}
	if clk == nil {
		clk = clock.C
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := configurePragmas(db, cfg); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping database: %w", err)
	}

	return &Storage{db: db, clock: clk}, nil
}

func configurePragmas(db *sql.DB, cfg Config) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
	}
	if cfg.JournalMode != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA journal_mode = %s", cfg.JournalMode))
	}
	if cfg.EnableForeignKeys {
		pragmas = append(pragmas, "PRAGMA foreign_keys = ON")
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("sqlite: apply %s: %w", pragma, err)
		}
	}

	return nil
}

// DB exposes the underlying connection pool.
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping tests the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate brings the database schema up to the latest registered version.
// It must run to completion before any repository method is used.
func (s *Storage) Migrate(ctx context.Context) (migration.Result, error) {
	registry, err := migration.NewRegistry(upgrades.All(s.clock))
	if err != nil {
		return migration.Result{}, err
	}

	versions := migration.NewVersionStore(s.db)
	runner := migration.NewRunnerWithLogger(s.db, registry, versions, logging.FromContext(ctx))

	return runner.Run(ctx)
}

// SchemaVersion reports the currently persisted schema version.
func (s *Storage) SchemaVersion(ctx context.Context) (migration.Version, error) {
	versions := migration.NewVersionStore(s.db)
	if err := versions.Ensure(ctx); err != nil {
		return migration.Baseline, err
	}
	return versions.Current(ctx)
}

// TransactionFunc represents a function that executes within a transaction.
type TransactionFunc func(tx *sql.Tx) error

// WithTransaction executes fn inside a transaction, rolling back when fn
// returns an error or panics and committing otherwise.
func (s *Storage) WithTransaction(ctx context.Context, fn TransactionFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit transaction: %w", err)
	}

	return nil
}
