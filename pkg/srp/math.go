package srp

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/stephenoneal/warrant/pkg/protocol"
	"golang.org/x/crypto/hkdf"
)

const (
	// derivedKeyInfo is the HKDF info string the provider uses for the password authentication key.
	derivedKeyInfo = "Caldera Derived Key"

	// PasswordKeyLength is the length of the password authentication key (AES-128).
	PasswordKeyLength = 16
)

// PowMod returns base^exp mod mod, reduced into [0, mod).
//
// big.Int.Exp uses fixed-window Montgomery exponentiation for odd moduli such as N,
// so there is no early exit on the bit length of a secret exponent.
func PowMod(base, exp, mod *big.Int) (*big.Int, error) {
	if mod.Sign() <= 0 {
		return nil, protocol.NewFormatError("modulus must be positive", nil)
	}
	if exp.Sign() < 0 {
		return nil, protocol.NewFormatError("exponent must be non-negative", nil)
	}

	b := new(big.Int).Mod(base, mod)
	return new(big.Int).Exp(b, exp, mod), nil
}

// HashSHA256 returns the SHA-256 of buf as 64 lowercase hex digits.
func HashSHA256(buf []byte) string {
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// HexHash returns HashSHA256 of the bytes encoded by hexStr.
func HexHash(hexStr string) (string, error) {
	buf, err := HexBytes(hexStr)
	if err != nil {
		return "", err
	}
	return HashSHA256(buf), nil
}

// ComputeU computes the scrambling parameter u = H(PAD(A) | PAD(B)).
//
//nolint:gocritic // A and B are capitalized per RFC 5054 notation
func ComputeU(A, B *big.Int) (*big.Int, error) {
	hash := sha256.New()
	hash.Write(paddedBytes(A))
	hash.Write(paddedBytes(B))

	return scramblingParameter(hash.Sum(nil))
}

// scramblingParameter interprets the H(A | B) digest as u, rejecting zero.
func scramblingParameter(digest []byte) (*big.Int, error) {
	u := new(big.Int).SetBytes(digest)
	if u.Sign() == 0 {
		return nil, protocol.NewProtocolError("invalid u: H(A | B) == 0")
	}
	return u, nil
}

// ComputeX derives the private key x = H(PAD(salt) | H(poolName | username | ":" | password)).
// The password is only held for the duration of the call.
func ComputeX(saltHex, poolName, username, password string) (*big.Int, error) {
	salt, err := HexBytes(PadHex(saltHex))
	if err != nil {
		return nil, fmt.Errorf("invalid salt: %w", err)
	}

	innerHash := sha256.Sum256([]byte(poolName + username + ":" + password))

	outerHash := sha256.New()
	outerHash.Write(salt)
	outerHash.Write(innerHash[:])

	return new(big.Int).SetBytes(outerHash.Sum(nil)), nil
}

// DerivePasswordAuthenticationKey derives the 16-byte password authentication key
// HKDF-SHA256(ikm = PAD(S), salt = PAD(u), info = "Caldera Derived Key").
//
//nolint:gocritic // S is capitalized per RFC 5054 notation
func DerivePasswordAuthenticationKey(S, u *big.Int) ([]byte, error) {
	kdf := hkdf.New(sha256.New, paddedBytes(S), paddedBytes(u), []byte(derivedKeyInfo))

	key := make([]byte, PasswordKeyLength)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, protocol.NewInternalError("failed to derive password authentication key", err)
	}
	return key, nil
}
