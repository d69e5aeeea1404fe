package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/WatchBeam/clock"

	"github.com/example/assetdb/internal/config"
	"github.com/example/assetdb/internal/logging"
	"github.com/example/assetdb/internal/persistence/sqlite"
	"github.com/example/assetdb/internal/persistence/sqlite/migration"
)

func main() {
	statusOnly := flag.Bool("status", false, "report the current schema version without applying migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	if err := run(ctx, cfg, logger, *statusOnly); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, statusOnly bool) error {
	storageCfg := sqlite.DefaultConfig(cfg.SQLiteDSN)
	storageCfg.BusyTimeout = cfg.BusyTimeout
	storageCfg.JournalMode = cfg.JournalMode

	storage, err := sqlite.Open(storageCfg, clock.C)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if statusOnly {
		version, err := storage.SchemaVersion(ctx)
		if err != nil {
			logger.Error("failed to read schema version", "error", err)
			return err
		}
		logger.Info("schema version", "version", int(version))
		return nil
	}

	result, err := storage.Migrate(ctx)
	if err != nil {
		var stepErr *migration.StepError
		if errors.As(err, &stepErr) {
			logger.Error("migration halted, refusing to proceed with the unmigrated store",
				"step", stepErr.Name,
				"from", int(stepErr.From),
				"to", int(stepErr.To),
				"error", stepErr.Err,
			)
		} else {
			logger.Error("migration failed", "error", err)
		}
		return err
	}

	switch result.Outcome {
	case migration.OutcomeUpToDate:
		logger.Info("database is up to date", "version", int(result.Version))
	case migration.OutcomeDone:
		logger.Info("database migrated", "version", int(result.Version), "applied", result.Applied)
	}

	return nil
}
