package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/example/assetdb/internal/logging"
)

// Runner drives the registry against the store: it determines the current
// version, selects the pending steps, and executes each inside its own
// transaction, advancing the version marker within that same transaction.
// The first failure rolls back, halts the run, and leaves the store at the
// last committed version.
type Runner struct {
	db       *sql.DB
	registry *Registry
	versions *VersionStore
	logger   *slog.Logger
}

// NewRunner creates a runner over the given database and registry.
func NewRunner(db *sql.DB, registry *Registry, versions *VersionStore) *Runner {
	return NewRunnerWithLogger(db, registry, versions, nil)
}

// NewRunnerWithLogger creates a runner that reports progress to the supplied
// logger. A nil logger falls back to slog.Default.
func NewRunnerWithLogger(db *sql.DB, registry *Registry, versions *VersionStore, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		db:       db,
		registry: registry,
		versions: versions,
		logger:   logger,
	}
}

// Run applies every pending step in ascending order. It is meant to be called
// exactly once, at startup, before anything else accesses the store. On
// failure the returned result reflects the work committed before the halt.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	logger := r.runLogger(ctx)

	if err := r.versions.Ensure(ctx); err != nil {
		return Result{}, err
	}

	current, err := r.versions.Current(ctx)
	if err != nil {
		return Result{}, err
	}

	pending := r.registry.StepsFrom(current)
	if len(pending) == 0 {
		logger.Info("database schema is up to date", "version", int(current))
		return Result{Outcome: OutcomeUpToDate, Version: current}, nil
	}

	logger.Info("applying pending migrations",
		"current_version", int(current),
		"target_version", int(r.registry.Latest()),
		"pending", len(pending),
	)

	result := Result{Outcome: OutcomeDone, Version: current}

	for _, step := range pending {
		if err := r.applyStep(ctx, logger, step); err != nil {
			result.Outcome = OutcomeFailed
			return result, err
		}
		result.Version = step.To
		result.Applied++
	}

	logger.Info("all migrations applied", "version", int(result.Version), "applied", result.Applied)

	return result, nil
}

// applyStep executes one step and the version bump inside a single
// transaction. Coupling the two is the central correctness guarantee: the
// store can never claim a version whose step did not commit.
func (r *Runner) applyStep(ctx context.Context, logger *slog.Logger, step Step) error {
	up := instrumentStep(step, logger)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return newStepError(step, fmt.Errorf("begin transaction: %w", err))
	}

	if err := up(ctx, tx); err != nil {
		r.rollback(logger, tx, step)
		return newStepError(step, err)
	}

	if err := r.versions.Set(ctx, tx, step.To); err != nil {
		r.rollback(logger, tx, step)
		return newStepError(step, err)
	}

	if err := tx.Commit(); err != nil {
		return newStepError(step, fmt.Errorf("commit transaction: %w", err))
	}

	return nil
}

func (r *Runner) rollback(logger *slog.Logger, tx *sql.Tx, step Step) {
	if err := tx.Rollback(); err != nil {
		logger.Error("failed to roll back migration transaction",
			"step", step.Name, "error", err)
	}
}

// runLogger prefers a context-carried logger and tags the run with a unique id
// so interleaved process logs stay attributable.
func (r *Runner) runLogger(ctx context.Context) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = r.logger
	}
	return logger.With("component", "migration", "run_id", uuid.NewString())
}
