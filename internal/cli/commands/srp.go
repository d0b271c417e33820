package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/stephenoneal/warrant/internal/authflow"
	"github.com/stephenoneal/warrant/internal/cli/output"
	"github.com/stephenoneal/warrant/internal/config"
	"github.com/stephenoneal/warrant/pkg/srp"
)

// EnvPassword supplies the password non-interactively.
const EnvPassword = "WARRANT_PASSWORD"

// SRPCommand implements the 'srp' command, a USER_SRP_AUTH sign-in relayed over stdio.
type SRPCommand struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// readPassword is swapped out in tests.
	readPassword func(io.Writer) (string, error)
}

// srpOptions are the parsed 'srp' flags.
type srpOptions struct {
	flags       config.Flags
	password    string
	newPassword string
	format      output.Format
	outFile     string
}

// NewSRPCommand creates a new srp command instance bound to the process stdio.
func NewSRPCommand() *SRPCommand {
	return &SRPCommand{
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		readPassword: promptPassword,
	}
}

// Execute runs the srp command with the provided arguments.
func (c *SRPCommand) Execute(args []string) {
	opts, err := c.parse(args)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		exitWithError("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := c.run(ctx, opts); err != nil {
		exitWithError("authentication failed: %v", err)
	}
}

func (c *SRPCommand) parse(args []string) (*srpOptions, error) {
	fs := flag.NewFlagSet("srp", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	poolID := fs.String("pool-id", "", "User pool id, <region>_<name>")
	clientID := fs.String("client-id", "", "App client id")
	username := fs.String("username", "", "Username or alias to sign in as")
	password := fs.String("password", "", "Password (prompts if not provided and "+EnvPassword+" is unset)")
	newPassword := fs.String("new-password", "", "New password, if the provider requires a password change")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn or error")
	format := fs.String("output", "json", "Token output format: json, yaml or env")
	outFile := fs.String("out", "", "Write tokens to this file instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(c.stderr, `Usage: warrant srp [flags]

Sign in to a user pool with the USER_SRP_AUTH flow. Each provider request is
written to stdout as a JSON document and the provider's answer is read from
stdin, so the exchange can be relayed over any transport.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(c.stderr, `
Examples:
  # Interactive relay (paste the provider responses)
  warrant srp --pool-id us-east-1_AbCdEf --client-id 1example23 --username bjones

  # Tokens as shell exports, written to a private file
  warrant srp --output env --out ~/.warrant-tokens
`)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	f, err := output.ParseFormat(*format)
	if err != nil {
		return nil, err
	}

	return &srpOptions{
		flags: config.Flags{
			PoolID:   *poolID,
			ClientID: *clientID,
			Username: *username,
			LogLevel: *logLevel,
		},
		password:    *password,
		newPassword: *newPassword,
		format:      f,
		outFile:     *outFile,
	}, nil
}

func (c *SRPCommand) run(ctx context.Context, opts *srpOptions) error {
	cfg, err := loadConfig(opts.flags)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	logger.SetOutput(c.stderr)

	password := opts.password
	if password == "" {
		password = os.Getenv(EnvPassword)
	}
	if password == "" {
		password, err = c.readPassword(c.stderr)
		if err != nil {
			return err
		}
	}

	clientOpts := []srp.Option{
		srp.WithLogger(logger.WithFields(map[string]any{
			"pool_id":   cfg.PoolID,
			"client_id": cfg.ClientID,
		})),
	}
	if cfg.ClientSecret != "" {
		clientOpts = append(clientOpts, srp.WithClientSecret(cfg.ClientSecret))
	}

	client, err := srp.NewClient(cfg.Username, password, cfg.PoolID, cfg.ClientID, clientOpts...)
	if err != nil {
		return err
	}

	provider := authflow.NewStreamProvider(c.stdin, c.stdout)
	result, err := authflow.AuthenticateWithNewPassword(ctx, provider, client, opts.newPassword)
	if errors.Is(err, authflow.ErrPasswordChangeRequired) {
		return fmt.Errorf("%w: rerun with --new-password", err)
	}
	if err != nil {
		return err
	}

	logger.Info("Authentication succeeded", map[string]any{
		"username":   cfg.Username,
		"expires_in": result.ExpiresIn,
	})

	return c.writeTokens(output.Tokens{
		AccessToken:  result.AccessToken,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
	}, opts)
}

func (c *SRPCommand) writeTokens(tokens output.Tokens, opts *srpOptions) error {
	if opts.outFile == "" {
		return output.WriteTokens(c.stdout, tokens, opts.format)
	}

	f, err := os.OpenFile(opts.outFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open token file: %w", err)
	}

	if err := output.WriteTokens(f, tokens, opts.format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
