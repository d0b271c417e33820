// Package main provides the warrant CLI for signing in to a user pool with SRP.
//
// The warrant CLI computes the client side of the USER_SRP_AUTH flow. It does not
// talk to the identity provider itself: requests are printed as JSON and the
// provider's answers are read back, so any transport can carry them.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/stephenoneal/warrant/internal/cli/clicontext"
	"github.com/stephenoneal/warrant/internal/cli/commands"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	args, command, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	switch command {
	case "--help", "-h", "help", "":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("warrant version %s\n", version)
		os.Exit(0)
	}

	switch command {
	case "srp":
		commands.NewSRPCommand().Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// parseGlobalFlags processes global flags and returns remaining args and the command.
// Global flags can appear anywhere in the argument list.
// Examples:
//
//	warrant --debug srp --username bjones
//	warrant srp --config ./pool.yaml --username bjones
//	warrant srp --username bjones --config=./pool.yaml
func parseGlobalFlags(args []string) ([]string, string, error) {
	remainingArgs := make([]string, 0, len(args))
	var command string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--debug" || arg == "-d":
			clicontext.SetDebug(true)
			continue
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, "", fmt.Errorf("--config requires a path")
			}
			i++
			clicontext.SetConfigPath(args[i])
			continue
		case strings.HasPrefix(arg, "--config="):
			clicontext.SetConfigPath(strings.TrimPrefix(arg, "--config="))
			continue
		}

		// First non-flag argument is the command; --help and --version stand in for one
		if command == "" && (!isFlag(arg) || isCommandFlag(arg)) {
			command = arg
			continue
		}

		remainingArgs = append(remainingArgs, arg)
	}

	return remainingArgs, command, nil
}

// isFlag returns true if the argument looks like a flag (starts with -).
func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func isCommandFlag(arg string) bool {
	switch arg {
	case "--help", "-h", "--version", "-v":
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `warrant - SRP sign-in client for user pools

Usage:
  warrant <command> [flags]

Available Commands:
  srp          Sign in with USER_SRP_AUTH, relaying provider messages over stdio
  version      Show version information
  help         Show this help

Global Flags:
  --help, -h        Show help information
  --version, -v     Show version information
  --debug, -d       Log at debug level
  --config <path>   Config file (default: <user config dir>/warrant/config.yaml)

Environment:
  WARRANT_POOL_ID, WARRANT_CLIENT_ID, WARRANT_CLIENT_SECRET, WARRANT_USERNAME,
  WARRANT_LOG_LEVEL and WARRANT_PASSWORD override the config file.

Examples:
  # Relay through the AWS CLI by hand
  warrant srp --pool-id us-east-1_AbCdEf --client-id 1example23 --username bjones

  # Print tokens as shell exports
  warrant srp --output env

For detailed help on a specific command, run:
  warrant <command> --help

`)
}
