package config

import (
	"fmt"
	"strings"

	"github.com/stephenoneal/warrant/internal/logging"
	"github.com/stephenoneal/warrant/pkg/srp"
)

// Validate performs comprehensive validation on the configuration.
func Validate(cfg *Config) error {
	if err := validatePool(cfg); err != nil {
		return fmt.Errorf("pool validation failed: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

func validatePool(cfg *Config) error {
	if cfg.PoolID == "" {
		return fmt.Errorf("pool_id is required (or set %s)", EnvPoolID)
	}

	if _, err := srp.PoolName(cfg.PoolID); err != nil {
		return fmt.Errorf("pool_id must look like <region>_<name>: %w", err)
	}

	if cfg.ClientID == "" {
		return fmt.Errorf("client_id is required (or set %s)", EnvClientID)
	}

	if strings.ContainsAny(cfg.ClientID, " \t\n") {
		return fmt.Errorf("client_id contains whitespace")
	}

	if cfg.Username == "" {
		return fmt.Errorf("username is required (or set %s)", EnvUsername)
	}

	return nil
}

func validateLogging(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	if _, err := logging.ParseFormat(cfg.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}

	return nil
}
