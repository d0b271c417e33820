package srp_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stephenoneal/warrant/pkg/protocol"
	"github.com/stephenoneal/warrant/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongToHex(t *testing.T) {
	tests := []struct {
		name     string
		n        *big.Int
		expected string
	}{
		{"zero", big.NewInt(0), "00"},
		{"single digit", big.NewInt(2), "02"},
		{"odd length", big.NewInt(0xabc), "0abc"},
		{"even length", big.NewInt(0xff), "ff"},
		{"lowercase", big.NewInt(0xABCD), "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, srp.LongToHex(tt.n))
		})
	}
}

func TestHexToLong(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"lowercase", "ff", 255},
		{"uppercase", "FF", 255},
		{"mixed case", "aBc", 0xabc},
		{"leading zeros", "000001", 1},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := srp.HexToLong(tt.input)
			require.NoError(t, err)
			assert.Equal(t, 0, n.Cmp(big.NewInt(tt.expected)))
		})
	}
}

func TestHexToLong_Invalid(t *testing.T) {
	inputs := []string{"", "xyz", "0x1f", "-1f", "+1f", "12 34", "1_000"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := srp.HexToLong(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, protocol.ErrFormat)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	values := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(255), big.NewInt(256), srp.N, srp.K}
	for range 32 {
		n, err := rand.Int(rand.Reader, srp.N)
		require.NoError(t, err)
		values = append(values, n)
	}

	for _, n := range values {
		back, err := srp.HexToLong(srp.LongToHex(n))
		require.NoError(t, err)
		assert.Equal(t, 0, n.Cmp(back), "round trip of %s", n.Text(16))
		assert.Equal(t, 0, len(srp.LongToHex(n))%2, "hex must have an even digit count")
	}
}

func TestPadHex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abc", "0abc"},
		{"8f", "008f"},
		{"7f", "7f"},
		{"F0", "00F0"},
		{"00", "00"},
		{"0080", "0080"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, srp.PadHex(tt.input))
		})
	}
}

func TestPadHexInt(t *testing.T) {
	assert.Equal(t, "00", srp.PadHexInt(big.NewInt(0)))
	assert.Equal(t, "00ff", srp.PadHexInt(big.NewInt(255)))
	assert.Equal(t, "02", srp.PadHexInt(srp.G))
	assert.Equal(t, "00ffffffffffffffff", srp.PadHexInt(srp.N)[:18])
}

func TestHexBytes(t *testing.T) {
	b, err := srp.HexBytes("00ff10")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, b)

	_, err = srp.HexBytes("abc")
	assert.ErrorIs(t, err, protocol.ErrFormat)

	_, err = srp.HexBytes("zz")
	assert.ErrorIs(t, err, protocol.ErrFormat)
}
