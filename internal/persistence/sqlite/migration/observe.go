package migration

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// instrumentStep wraps a step's action with entry/exit logging and timing.
// The wrapper is transparent to control flow: the wrapped action's error is
// returned exactly as produced, never swallowed or transformed.
func instrumentStep(step Step, logger *slog.Logger) StepFunc {
	return func(ctx context.Context, tx *sql.Tx) error {
		logger.Info("migration step starting",
			"step", step.Name, "from", int(step.From), "to", int(step.To))
		start := time.Now()

		err := step.Up(ctx, tx)

		elapsed := time.Since(start)
		if err != nil {
			logger.Error("migration step failed",
				"step", step.Name, "from", int(step.From), "to", int(step.To),
				"elapsed", elapsed, "error", err)
			return err
		}

		logger.Info("migration step finished",
			"step", step.Name, "from", int(step.From), "to", int(step.To),
			"elapsed", elapsed)
		return nil
	}
}
