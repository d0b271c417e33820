package srp

import (
	"errors"
	"strings"

	"github.com/stephenoneal/warrant/pkg/protocol"
)

// Client represents the client-side state for SRP authentication against a user pool.
// A Client runs one attempt at a time; StartExchange begins a new attempt.
type Client struct {
	Username string
	Password string
	PoolID   string
	ClientID string

	poolName string
	opts     options
	exchange *Exchange
	cleared  bool
}

// NewClient creates a new SRP client for authentication. poolID has the form
// "<region>_<name>", e.g. "us-east-1_AbCdEf".
func NewClient(username, password, poolID, clientID string, opts ...Option) (*Client, error) {
	if username == "" {
		return nil, protocol.NewMissingParameterError("username")
	}

	poolName, err := PoolName(poolID)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		Username: username,
		Password: password,
		PoolID:   poolID,
		ClientID: clientID,
		poolName: poolName,
		opts:     o,
	}, nil
}

// PoolName returns the part of a user pool id after the region, which the provider
// mixes into the password hash and the claim signature.
func PoolName(poolID string) (string, error) {
	parts := strings.Split(poolID, "_")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", protocol.NewErrorWithDetails(protocol.ErrCodeFormat, "Invalid user pool id", poolID)
	}
	return parts[1], nil
}

// State returns the state of the current attempt.
func (c *Client) State() State {
	if c.exchange == nil {
		return StateUnstarted
	}
	return c.exchange.State()
}

// StartExchange begins a new attempt: it discards any previous ephemeral state,
// generates a fresh a/A and returns the USER_SRP_AUTH parameters.
func (c *Client) StartExchange() (*protocol.AuthParameters, error) {
	if c.cleared {
		return nil, protocol.NewSequenceError("StartExchange", "SecretsCleared")
	}

	if c.exchange != nil {
		c.exchange.Clear()
	}

	c.exchange = newExchange(c.opts)
	A, err := c.exchange.CalculateA()
	if err != nil {
		c.opts.logger.Warn("SRP exchange failed to start", map[string]any{
			"username": c.Username,
			"code":     errorCode(err),
		})
		return nil, err
	}

	params := &protocol.AuthParameters{
		Username:   c.Username,
		SRPA:       LongToHex(A),
		SecretHash: c.SecretHashFor(c.Username),
	}

	c.opts.logger.Debug("SRP exchange started", map[string]any{
		"username": c.Username,
		"pool":     c.poolName,
	})

	return params, nil
}

// RespondToChallenge answers the provider's PASSWORD_VERIFIER challenge.
// overrideTimestamp pins TIMESTAMP for reproducible output; pass "" in production.
func (c *Client) RespondToChallenge(ch *protocol.ChallengeParameters, overrideTimestamp string) (*protocol.ChallengeResponse, error) {
	if c.exchange == nil {
		return nil, protocol.NewSequenceError("RespondToChallenge", StateUnstarted.String())
	}

	creds := Credentials{
		PoolName:     c.poolName,
		Password:     c.Password,
		ClientID:     c.ClientID,
		ClientSecret: c.opts.clientSecret,
	}

	resp, err := c.exchange.ProcessChallenge(creds, ch, overrideTimestamp)
	if err != nil {
		c.opts.logger.Warn("SRP challenge rejected", map[string]any{
			"username": c.Username,
			"state":    c.exchange.State().String(),
			"code":     errorCode(err),
		})
		return nil, err
	}

	c.opts.logger.Info("SRP challenge answered", map[string]any{
		"username":  resp.Username,
		"timestamp": resp.Timestamp,
	})

	return resp, nil
}

// SecretHashFor returns the SECRET_HASH for username, or "" when the client
// has no secret configured.
func (c *Client) SecretHashFor(username string) string {
	if c.opts.clientSecret == "" {
		return ""
	}
	return SecretHash(username, c.ClientID, c.opts.clientSecret)
}

// ClearSecrets clears sensitive values from memory. The client cannot start
// another exchange afterwards.
func (c *Client) ClearSecrets() {
	c.cleared = true
	c.Password = ""
	c.opts.clientSecret = ""
	if c.exchange != nil {
		c.exchange.Clear()
	}
}

func errorCode(err error) string {
	var perr *protocol.Error
	if errors.As(err, &perr) {
		return string(perr.Code)
	}
	return "UNKNOWN"
}
