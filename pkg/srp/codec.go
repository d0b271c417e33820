package srp

import (
	"encoding/hex"
	"math/big"

	"github.com/stephenoneal/warrant/pkg/protocol"
)

// LongToHex returns n as lowercase hex without a 0x prefix, padded to an even
// number of digits. n must be non-negative.
func LongToHex(n *big.Int) string {
	s := n.Text(16)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return s
}

// HexToLong parses a hex string. It is case-insensitive and accepts leading zeros;
// signs, prefixes and any other non-hex characters are rejected.
func HexToLong(s string) (*big.Int, error) {
	if s == "" {
		return nil, protocol.NewFormatError("empty hex string", nil)
	}
	if !isHex(s) {
		return nil, protocol.NewFormatError("invalid hex string", nil)
	}

	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, protocol.NewFormatError("invalid hex string", nil)
	}
	return n, nil
}

// PadHex makes a hex string safe to hash as a big-endian byte block: odd-length
// input gets a leading 0, and input whose high bit is set gets a leading 00 so
// the value is not read back as negative.
func PadHex(s string) string {
	switch {
	case len(s)%2 == 1:
		return "0" + s
	case len(s) > 0 && isHighDigit(s[0]):
		return "00" + s
	default:
		return s
	}
}

// PadHexInt is PadHex applied to LongToHex(n).
func PadHexInt(n *big.Int) string {
	return PadHex(LongToHex(n))
}

// HexBytes decodes an even-length hex string.
func HexBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, protocol.NewFormatError("invalid hex bytes", err)
	}
	return b, nil
}

// paddedBytes returns the bytes of PadHexInt(n) without the hex round trip.
func paddedBytes(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) == 0 || b[0]&0x80 != 0 {
		return append([]byte{0}, b...)
	}
	return b
}

func isHex(s string) bool {
	for i := range len(s) {
		c := s[i]
		//nolint:staticcheck // QF1001: current form is more readable
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func isHighDigit(c byte) bool {
	return (c >= '8' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
