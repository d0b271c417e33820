package srp_test

import (
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/stephenoneal/warrant/pkg/protocol"
	"github.com/stephenoneal/warrant/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
	fields  []map[string]any
}

func (l *recordingLogger) record(level, msg string, fields ...map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
	l.fields = append(l.fields, fields...)
}

func (l *recordingLogger) Debug(msg string, fields ...map[string]any) { l.record("debug", msg, fields...) }
func (l *recordingLogger) Info(msg string, fields ...map[string]any)  { l.record("info", msg, fields...) }
func (l *recordingLogger) Warn(msg string, fields ...map[string]any)  { l.record("warn", msg, fields...) }

func TestNewClient(t *testing.T) {
	client, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id")
	require.NoError(t, err)

	assert.Equal(t, "testuser", client.Username)
	assert.Equal(t, "testpass", client.Password)
	assert.Equal(t, "us-east-1_AbCdEf", client.PoolID)
	assert.Equal(t, "client-id", client.ClientID)
	assert.Equal(t, srp.StateUnstarted, client.State())
}

func TestNewClient_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		username string
		poolID   string
		errMsg   string
	}{
		{"empty username", "", "us-east-1_AbCdEf", "username"},
		{"pool id without region", "user", "AbCdEf", "Invalid user pool id"},
		{"pool id with empty name", "user", "us-east-1_", "Invalid user pool id"},
		{"pool id with empty region", "user", "_AbCdEf", "Invalid user pool id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srp.NewClient(tt.username, "pass", tt.poolID, "client-id")
			require.Error(t, err)
			assert.ErrorIs(t, err, protocol.ErrFormat)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPoolName(t *testing.T) {
	name, err := srp.PoolName("eu-west-2_xYz123")
	require.NoError(t, err)
	assert.Equal(t, "xYz123", name)
}

func TestClient_StartExchange(t *testing.T) {
	client, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id")
	require.NoError(t, err)

	params, err := client.StartExchange()
	require.NoError(t, err)

	assert.Equal(t, "testuser", params.Username)
	assert.Empty(t, params.SecretHash)
	assert.Equal(t, srp.StateAHasBeenSent, client.State())

	// SRP_A is lowercase even-length hex of a value in [1, N)
	assert.Equal(t, 0, len(params.SRPA)%2)
	A := mustHex(t, params.SRPA)
	assert.Equal(t, srp.LongToHex(A), params.SRPA)
	assert.Equal(t, 1, A.Sign())
	assert.Equal(t, -1, A.Cmp(srp.N))

	m := params.ToMap()
	assert.Equal(t, map[string]string{"USERNAME": "testuser", "SRP_A": params.SRPA}, m)
}

func TestClient_StartExchange_SecretHash(t *testing.T) {
	client, err := srp.NewClient("bjones", "pass", "us-east-1_AbCdEf", "clientid123",
		srp.WithClientSecret("client-secret"))
	require.NoError(t, err)

	params, err := client.StartExchange()
	require.NoError(t, err)

	assert.Equal(t, srp.SecretHash("bjones", "clientid123", "client-secret"), params.SecretHash)
	assert.Equal(t, params.SecretHash, params.ToMap()["SECRET_HASH"])
}

func TestClient_StartExchange_Failure(t *testing.T) {
	logger := &recordingLogger{}
	client, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id",
		srp.WithEphemeralSecret(big.NewInt(0)), srp.WithLogger(logger))
	require.NoError(t, err)

	_, err = client.StartExchange()
	assert.ErrorIs(t, err, protocol.ErrInternal)
	assert.Equal(t, srp.StateFailed, client.State())
	assert.Contains(t, logger.entries, "warn: SRP exchange failed to start")
}

func TestClient_RespondToChallenge_RequiresStart(t *testing.T) {
	client, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id")
	require.NoError(t, err)

	_, err = client.RespondToChallenge(&protocol.ChallengeParameters{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrSequence)
	assert.Contains(t, err.Error(), "RespondToChallenge in state Unstarted")
}

func TestClient_RespondToChallenge_Vector(t *testing.T) {
	v := loadVector(t, "password_verifier_vector.json")

	client, err := srp.NewClient(v.Username, v.Password, v.PoolID, v.ClientID,
		srp.WithEphemeralSecret(mustHex(t, v.SmallA)),
		srp.WithClientSecret(v.ClientSecret))
	require.NoError(t, err)

	params, err := client.StartExchange()
	require.NoError(t, err)
	assert.Equal(t, v.LargeA, params.SRPA)

	resp, err := client.RespondToChallenge(v.challenge(), v.Timestamp)
	require.NoError(t, err)

	assert.Equal(t, v.Username, resp.Username)
	assert.Equal(t, v.SecretBlock, resp.ClaimBlock)
	assert.Equal(t, v.Signature, resp.ClaimSignature)
	assert.Equal(t, v.Timestamp, resp.Timestamp)
	assert.Equal(t, v.SecretHash, resp.SecretHash)
	assert.Equal(t, srp.StateSharedSecretComputed, client.State())
}

func TestClient_RespondToChallenge_FromMap(t *testing.T) {
	v := loadVector(t, "password_verifier_vector.json")

	client, err := srp.NewClient(v.Username, v.Password, v.PoolID, v.ClientID,
		srp.WithEphemeralSecret(mustHex(t, v.SmallA)))
	require.NoError(t, err)

	_, err = client.StartExchange()
	require.NoError(t, err)

	ch := protocol.ChallengeParametersFromMap(map[string]string{
		"SALT":            v.Salt,
		"SRP_B":           v.ServerB,
		"USER_ID_FOR_SRP": v.Username,
		"SECRET_BLOCK":    v.SecretBlock,
		"USERNAME":        v.Username,
	})

	resp, err := client.RespondToChallenge(ch, v.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, v.Signature, resp.ToMap()["PASSWORD_CLAIM_SIGNATURE"])
}

func TestClient_RestartAfterFailure(t *testing.T) {
	v := loadVector(t, "password_verifier_vector.json")

	client, err := srp.NewClient(v.Username, v.Password, v.PoolID, v.ClientID)
	require.NoError(t, err)

	first, err := client.StartExchange()
	require.NoError(t, err)

	bad := v.challenge()
	bad.SRPB = srp.LongToHex(srp.N)
	_, err = client.RespondToChallenge(bad, "")
	require.ErrorIs(t, err, protocol.ErrProtocol)
	assert.Equal(t, srp.StateFailed, client.State())

	// Retrying the same exchange is refused
	_, err = client.RespondToChallenge(v.challenge(), "")
	assert.ErrorIs(t, err, protocol.ErrSequence)

	// A fresh exchange gets a fresh A
	second, err := client.StartExchange()
	require.NoError(t, err)
	assert.NotEqual(t, first.SRPA, second.SRPA)
	assert.Equal(t, srp.StateAHasBeenSent, client.State())
}

func TestClient_LogsWithoutSecrets(t *testing.T) {
	v := loadVector(t, "password_verifier_vector.json")
	logger := &recordingLogger{}

	client, err := srp.NewClient(v.Username, v.Password, v.PoolID, v.ClientID,
		srp.WithEphemeralSecret(mustHex(t, v.SmallA)),
		srp.WithClientSecret(v.ClientSecret),
		srp.WithLogger(logger))
	require.NoError(t, err)

	_, err = client.StartExchange()
	require.NoError(t, err)
	_, err = client.RespondToChallenge(v.challenge(), v.Timestamp)
	require.NoError(t, err)

	assert.Equal(t, []string{"debug: SRP exchange started", "info: SRP challenge answered"}, logger.entries)

	secrets := []string{v.Password, v.ClientSecret, v.SmallA, v.Signature, v.SecretHash}
	for _, fields := range logger.fields {
		for k, val := range fields {
			for _, secret := range secrets {
				assert.NotContains(t, fmt.Sprint(val), secret, "field %q leaks a secret", k)
			}
		}
	}
}

func TestClient_ClearSecrets(t *testing.T) {
	client, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id")
	require.NoError(t, err)

	_, err = client.StartExchange()
	require.NoError(t, err)

	client.ClearSecrets()
	assert.Equal(t, "", client.Password, "password should be cleared")

	// The ephemeral secret is gone, so the exchange cannot derive a key
	_, err = client.RespondToChallenge(&protocol.ChallengeParameters{
		Salt:         "0a1b",
		SRPB:         "0400",
		UserIDForSRP: "testuser",
		SecretBlock:  "c2VjcmV0",
	}, "")
	assert.ErrorIs(t, err, protocol.ErrSequence)

	params, err := client.StartExchange()
	assert.Nil(t, params)
	assert.ErrorIs(t, err, protocol.ErrSequence, "a cleared client should not start another exchange")
}

func TestClient_SecretHashFor(t *testing.T) {
	plain, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id")
	require.NoError(t, err)
	assert.Empty(t, plain.SecretHashFor("testuser"))

	secret, err := srp.NewClient("testuser", "testpass", "us-east-1_AbCdEf", "client-id",
		srp.WithClientSecret("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, srp.SecretHash("internal-id", "client-id", "s3cret"), secret.SecretHashFor("internal-id"))
}

func TestClient_IndependentExchangesInParallel(t *testing.T) {
	v := loadVector(t, "password_verifier_vector.json")

	const workers = 8
	signatures := make([]string, workers)
	smallA := mustHex(t, v.SmallA)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			client, err := srp.NewClient(v.Username, v.Password, v.PoolID, v.ClientID,
				srp.WithEphemeralSecret(smallA))
			if !assert.NoError(t, err) {
				return
			}
			if _, err := client.StartExchange(); !assert.NoError(t, err) {
				return
			}
			resp, err := client.RespondToChallenge(v.challenge(), v.Timestamp)
			if !assert.NoError(t, err) {
				return
			}
			signatures[i] = resp.ClaimSignature
		}()
	}
	wg.Wait()

	for _, sig := range signatures {
		assert.Equal(t, v.Signature, sig)
	}
}
