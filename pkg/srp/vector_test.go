package srp_test

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stephenoneal/warrant/pkg/protocol"
	"github.com/stephenoneal/warrant/pkg/srp"
	"github.com/stretchr/testify/require"
)

// vector is a complete password verifier exchange. The server side (salt, verifier,
// B) was generated independently of this package and checked against S = (A*v^u)^b.
type vector struct {
	PoolID       string `json:"pool_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	SmallA       string `json:"small_a_value"`
	LargeA       string `json:"large_a_value"`
	Salt         string `json:"salt"`
	ServerB      string `json:"server_b_value"`
	SecretBlock  string `json:"secret_block"`
	Timestamp    string `json:"timestamp"`
	Key          string `json:"password_authentication_key"`
	Signature    string `json:"signature"`
	U            string `json:"u"`
	X            string `json:"x"`
	Verifier     string `json:"verifier"`
	SharedSecret string `json:"shared_secret"`
	SecretHash   string `json:"secret_hash"`
}

func loadVector(t *testing.T, name string) *vector {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var v vector
	require.NoError(t, json.Unmarshal(data, &v))
	return &v
}

func (v *vector) challenge() *protocol.ChallengeParameters {
	return &protocol.ChallengeParameters{
		Salt:         v.Salt,
		SRPB:         v.ServerB,
		UserIDForSRP: v.Username,
		SecretBlock:  v.SecretBlock,
	}
}

func mustHex(t *testing.T, s string) *big.Int {
	t.Helper()

	n, err := srp.HexToLong(s)
	require.NoError(t, err)
	return n
}
