// Package clicontext provides global CLI context and state management.
package clicontext

import "sync"

// Global holds the global CLI context, including flags that affect all commands.
type Global struct {
	// Debug forces debug-level logging regardless of configuration.
	Debug bool
	// ConfigPath overrides the default config file location.
	ConfigPath string
}

var (
	globalContext = &Global{}
	mu            sync.RWMutex
)

// Set replaces the global CLI context.
func Set(ctx *Global) {
	mu.Lock()
	defer mu.Unlock()
	globalContext = ctx
}

// Debug returns whether debug logging was requested.
func Debug() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalContext.Debug
}

// SetDebug sets the debug flag.
func SetDebug(value bool) {
	mu.Lock()
	defer mu.Unlock()
	globalContext.Debug = value
}

// ConfigPath returns the config file override, or "" for the default location.
func ConfigPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalContext.ConfigPath
}

// SetConfigPath sets the config file override.
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	globalContext.ConfigPath = path
}
