package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the asset
// database process.
type Config struct {
	SQLiteDSN   string
	BusyTimeout time.Duration
	JournalMode string
	LogLevel    string
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// supplied values and reporting every offending variable in one pass.
func Load() (Config, error) {
	cfg := Config{
		SQLiteDSN:   "file:assetdb.sqlite",
		BusyTimeout: 5 * time.Second,
		JournalMode: "WAL",
		LogLevel:    "info",
	}

	invalid := make([]string, 0, 2)

	if dsn := strings.TrimSpace(os.Getenv("ASSETDB_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("ASSETDB_BUSY_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "ASSETDB_BUSY_TIMEOUT")
		} else {
			cfg.BusyTimeout = timeout
		}
	}

	if mode := strings.TrimSpace(os.Getenv("ASSETDB_JOURNAL_MODE")); mode != "" {
		switch strings.ToUpper(mode) {
		case "WAL", "DELETE", "TRUNCATE", "MEMORY":
			cfg.JournalMode = strings.ToUpper(mode)
		default:
			invalid = append(invalid, "ASSETDB_JOURNAL_MODE")
		}
	}

	if level := strings.TrimSpace(os.Getenv("ASSETDB_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "warning", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "ASSETDB_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
