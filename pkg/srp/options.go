package srp

import (
	"crypto/rand"
	"io"
	"math/big"
	"time"
)

// Logger is the subset of the structured logger the client reports lifecycle events to.
// Implementations must not be handed secret values; the client never does.
type Logger interface {
	Debug(msg string, fields ...map[string]any)
	Info(msg string, fields ...map[string]any)
	Warn(msg string, fields ...map[string]any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...map[string]any) {}
func (nopLogger) Info(string, ...map[string]any)  {}
func (nopLogger) Warn(string, ...map[string]any)  {}

type options struct {
	clientSecret string
	random       io.Reader
	fixedA       *big.Int
	now          func() time.Time
	logger       Logger
}

func defaultOptions() options {
	return options{
		random: rand.Reader,
		now:    time.Now,
		logger: nopLogger{},
	}
}

// Option configures a Client or Exchange.
type Option func(*options)

// WithClientSecret sets the app client secret. When set, SECRET_HASH is sent with the
// auth parameters and the challenge response.
func WithClientSecret(secret string) Option {
	return func(o *options) {
		o.clientSecret = secret
	}
}

// WithRandom replaces crypto/rand as the source for the ephemeral secret.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		o.random = r
	}
}

// WithEphemeralSecret fixes the ephemeral secret a. Test vectors only: a fixed a
// defeats the protocol's forward secrecy.
func WithEphemeralSecret(a *big.Int) Option {
	return func(o *options) {
		o.fixedA = new(big.Int).Set(a)
	}
}

// WithClock sets the clock used for TIMESTAMP when no override is given.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
