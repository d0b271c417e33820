// Package commands provides CLI command implementations for the warrant tool.
package commands

import (
	"fmt"
	"os"

	"github.com/stephenoneal/warrant/internal/cli/clicontext"
	"github.com/stephenoneal/warrant/internal/config"
	"github.com/stephenoneal/warrant/internal/logging"
)

// loadConfig layers the config file, environment and flags, then validates the result.
func loadConfig(flags config.Flags) (*config.Config, error) {
	cfg, err := config.Load(clicontext.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.ApplyFlags(flags)
	if clicontext.Debug() {
		cfg.Logging.Level = string(logging.LevelDebug)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds the stderr logger described by cfg. The config must already be validated.
func newLogger(cfg *config.Config) *logging.Logger {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelWarn
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		format = logging.FormatHuman
	}
	return logging.New(level, format)
}

// exitWithError prints an error message to stderr and exits with status 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
