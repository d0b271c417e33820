// Package config provides configuration loading and validation for the warrant CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvPoolID       = "WARRANT_POOL_ID"
	EnvClientID     = "WARRANT_CLIENT_ID"
	EnvClientSecret = "WARRANT_CLIENT_SECRET"
	EnvUsername     = "WARRANT_USERNAME"
	EnvLogLevel     = "WARRANT_LOG_LEVEL"
)

// Config represents the warrant CLI configuration.
type Config struct {
	PoolID       string          `yaml:"pool_id"`
	ClientID     string          `yaml:"client_id"`
	ClientSecret string          `yaml:"client_secret,omitempty"`
	Username     string          `yaml:"username"`
	Logging      LoggingSettings `yaml:"logging"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Flags holds command-line overrides. Empty values leave the loaded setting untouched.
type Flags struct {
	PoolID   string
	ClientID string
	Username string
	LogLevel string
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		Logging: LoggingSettings{
			Level:  "warn",
			Format: "human",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(dir, "warrant", "config.yaml"), nil
}

// Load layers defaults, the config file and the environment.
//
// An empty path selects DefaultPath, which may be absent. An explicit path must exist.
//
//nolint:gosec // G304: Config path is from command-line argument
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env   string
		field *string
	}{
		{EnvPoolID, &c.PoolID},
		{EnvClientID, &c.ClientID},
		{EnvClientSecret, &c.ClientSecret},
		{EnvUsername, &c.Username},
		{EnvLogLevel, &c.Logging.Level},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}
}

// ApplyFlags overrides settings with non-empty command-line values.
func (c *Config) ApplyFlags(f Flags) {
	if f.PoolID != "" {
		c.PoolID = f.PoolID
	}
	if f.ClientID != "" {
		c.ClientID = f.ClientID
	}
	if f.Username != "" {
		c.Username = f.Username
	}
	if f.LogLevel != "" {
		c.Logging.Level = f.LogLevel
	}
}
