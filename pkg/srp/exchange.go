package srp

import (
	"fmt"
	"io"
	"math/big"

	"github.com/stephenoneal/warrant/pkg/protocol"
)

const (
	// smallABytes is the amount of randomness drawn for a before reduction mod N.
	smallABytes = 128

	// maxEphemeralAttempts bounds regeneration of a when a or A is degenerate.
	maxEphemeralAttempts = 10
)

// State is the position of an Exchange in its lifecycle.
type State int

// Exchange states.
const (
	StateUnstarted State = iota
	StateAHasBeenSent
	StateSharedSecretComputed
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "Unstarted"
	case StateAHasBeenSent:
		return "AHasBeenSent"
	case StateSharedSecretComputed:
		return "SharedSecretComputed"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Credentials are the long-lived inputs to a password verifier challenge.
type Credentials struct {
	PoolName     string
	Password     string
	ClientID     string
	ClientSecret string
}

// Exchange holds the ephemeral state of a single authentication attempt.
// It is not safe for concurrent use; independent attempts use independent Exchanges.
type Exchange struct {
	opts  options
	state State
	a     *big.Int // Client ephemeral private value
	A     *big.Int // Client ephemeral public value
}

// NewExchange creates an Exchange in the Unstarted state.
func NewExchange(opts ...Option) *Exchange {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newExchange(o)
}

func newExchange(o options) *Exchange {
	return &Exchange{
		opts:  o,
		state: StateUnstarted,
	}
}

// State returns the current state.
func (e *Exchange) State() State {
	return e.state
}

// PublicValue returns a copy of A, or nil before CalculateA succeeds.
func (e *Exchange) PublicValue() *big.Int {
	if e.A == nil {
		return nil
	}
	return new(big.Int).Set(e.A)
}

// CalculateA generates the ephemeral secret a and returns A = g^a mod N.
// Degenerate values (a == 0 or A mod N == 0) are regenerated up to
// maxEphemeralAttempts times before giving up with an internal error.
func (e *Exchange) CalculateA() (*big.Int, error) {
	if e.state != StateUnstarted {
		return nil, protocol.NewSequenceError("CalculateA", e.state.String())
	}

	for range maxEphemeralAttempts {
		a, err := e.generateSmallA()
		if err != nil {
			e.state = StateFailed
			return nil, protocol.NewInternalError("failed to generate ephemeral secret", err)
		}
		if a.Sign() == 0 {
			continue
		}

		// Compute A = g^a % N
		A := new(big.Int).Exp(G, a, N)

		// Validate A (must not be 0 mod N)
		if A.Sign() == 0 {
			continue
		}

		e.a = a
		e.A = A
		e.state = StateAHasBeenSent
		return new(big.Int).Set(A), nil
	}

	e.state = StateFailed
	return nil, protocol.NewInternalError(
		fmt.Sprintf("no valid ephemeral key after %d attempts", maxEphemeralAttempts), nil)
}

// generateSmallA draws a in [0, N) from the configured source.
func (e *Exchange) generateSmallA() (*big.Int, error) {
	if e.opts.fixedA != nil {
		return new(big.Int).Mod(e.opts.fixedA, N), nil
	}

	aBytes := make([]byte, smallABytes)
	if _, err := io.ReadFull(e.opts.random, aBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random a: %w", err)
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(aBytes), N), nil
}

// PasswordAuthenticationKey computes the shared secret S for server value B and
// derives the password authentication key from it.
// Client formula: S = (B - k*g^x)^(a + u*x) mod N
//
//nolint:gocritic // B is capitalized per RFC 5054 notation
func (e *Exchange) PasswordAuthenticationKey(poolName, userID, password string, B *big.Int, saltHex string) ([]byte, error) {
	if e.a == nil || e.A == nil {
		return nil, protocol.NewSequenceError("PasswordAuthenticationKey", e.state.String())
	}

	// Validate B (must not be 0 mod N)
	if new(big.Int).Mod(B, N).Sign() == 0 {
		return nil, protocol.NewProtocolError("invalid B: B mod N == 0")
	}

	// Compute u = H(A | B) - scrambling parameter
	u, err := ComputeU(e.A, B)
	if err != nil {
		return nil, err
	}

	// Derive private key x = H(salt | H(poolName | username | ":" | password))
	x, err := ComputeX(saltHex, poolName, userID, password)
	if err != nil {
		return nil, err
	}

	// Step 1: g^x mod N
	gx := new(big.Int).Exp(G, x, N)

	// Step 2: k*g^x mod N
	kgx := new(big.Int).Mul(K, gx)
	kgx.Mod(kgx, N)

	// Step 3: B - k*g^x mod N
	base := new(big.Int).Sub(B, kgx)
	base.Mod(base, N)

	// Step 4: a + u*x
	exponent := new(big.Int).Mul(u, x)
	exponent.Add(exponent, e.a)

	// Step 5: (B - k*g^x)^(a + u*x) mod N
	S := new(big.Int).Exp(base, exponent, N)
	defer S.SetInt64(0)

	return DerivePasswordAuthenticationKey(S, u)
}

// ProcessChallenge answers a PASSWORD_VERIFIER challenge. An empty timestamp means
// the current time from the exchange clock.
//
// On success the exchange moves to SharedSecretComputed, on failure to Failed; in
// both cases the ephemeral secret is wiped, so a new attempt needs a new Exchange.
func (e *Exchange) ProcessChallenge(c Credentials, ch *protocol.ChallengeParameters, timestamp string) (*protocol.ChallengeResponse, error) {
	if e.state != StateAHasBeenSent {
		return nil, protocol.NewSequenceError("ProcessChallenge", e.state.String())
	}

	resp, err := e.processChallenge(c, ch, timestamp)
	e.Clear()
	if err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.state = StateSharedSecretComputed
	return resp, nil
}

func (e *Exchange) processChallenge(c Credentials, ch *protocol.ChallengeParameters, timestamp string) (*protocol.ChallengeResponse, error) {
	if err := validateChallenge(ch); err != nil {
		return nil, err
	}

	B, err := HexToLong(ch.SRPB)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", protocol.KeySRPB, err)
	}

	key, err := e.PasswordAuthenticationKey(c.PoolName, ch.UserIDForSRP, c.Password, B, ch.Salt)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	if timestamp == "" {
		timestamp = FormatTimestamp(e.opts.now())
	}

	var secretHash string
	if c.ClientSecret != "" {
		secretHash = SecretHash(ch.UserIDForSRP, c.ClientID, c.ClientSecret)
	}

	return Respond(ResponseInput{
		PoolName:    c.PoolName,
		UserID:      ch.UserIDForSRP,
		SecretBlock: ch.SecretBlock,
		Timestamp:   timestamp,
		Key:         key,
		SecretHash:  secretHash,
	})
}

func validateChallenge(ch *protocol.ChallengeParameters) error {
	if ch == nil {
		return protocol.NewMissingParameterError("challenge parameters")
	}

	required := []struct {
		name  string
		value string
	}{
		{protocol.KeySalt, ch.Salt},
		{protocol.KeySRPB, ch.SRPB},
		{protocol.KeyUserIDForSRP, ch.UserIDForSRP},
		{protocol.KeySecretBlock, ch.SecretBlock},
	}
	for _, r := range required {
		if r.value == "" {
			return protocol.NewMissingParameterError(r.name)
		}
	}
	return nil
}

// Clear wipes the ephemeral secret a.
func (e *Exchange) Clear() {
	if e.a != nil {
		e.a.SetInt64(0)
		e.a = nil
	}
}
