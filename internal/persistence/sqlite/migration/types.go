package migration

import (
	"context"
	"database/sql"
)

// Version is the persisted schema version marker. A fresh database starts at
// the Baseline and each committed step advances the marker by exactly one.
type Version int

// Baseline is the version of a database no step has ever run against.
const Baseline Version = 0

// StepFunc applies one migration's changes using the supplied transaction.
// Implementations must not commit or roll back the transaction themselves;
// the runner owns the transaction lifecycle.
type StepFunc func(ctx context.Context, tx *sql.Tx) error

// Step is one atomic unit of schema or data change moving the store from
// version From to version To. To must equal From+1.
type Step struct {
	From Version
	To   Version
	Name string
	Up   StepFunc
}

// Outcome describes how a migration run ended.
type Outcome string

const (
	// OutcomeUpToDate means no registered step was pending.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeDone means every pending step committed.
	OutcomeDone Outcome = "done"
	// OutcomeFailed means a step's action failed and the run halted.
	OutcomeFailed Outcome = "failed"
)

// Result summarises a completed migration run. When a step fails the runner
// returns the result accumulated so far alongside the error, with Version set
// to the last successfully committed version.
type Result struct {
	Outcome Outcome
	Version Version
	Applied int
}
